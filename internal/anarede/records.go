package anarede

import (
	"fmt"

	"pwfconv/internal/domain"
	"pwfconv/internal/schema"
)

// RecordParser turns single fixed-column lines into typed records using the
// schema registry. One parser per record kind, each a thin application of
// Extract over the kind's ordered field list.
type RecordParser struct {
	reg *schema.Registry
}

// NewRecordParser creates a RecordParser over a loaded schema registry.
func NewRecordParser(reg *schema.Registry) *RecordParser {
	return &RecordParser{reg: reg}
}

// fieldValues holds one line's extracted fields by name.
type fieldValues map[string]any

func (fv fieldValues) str(name string) string {
	if v, ok := fv[name].(string); ok {
		return v
	}
	return ""
}

func (fv fieldValues) integer(name string) int {
	if v, ok := fv[name].(int); ok {
		return v
	}
	return 0
}

func (fv fieldValues) real(name string) float64 {
	if v, ok := fv[name].(float64); ok {
		return v
	}
	return 0
}

func (fv fieldValues) state(name string) domain.ConnState {
	return domain.ConnState(fv.str(name))
}

// extract pulls every field of the tagged kind out of the line, enforcing
// the kind's minimum line length first.
func (p *RecordParser) extract(tag domain.SectionTag, line string) (fieldValues, error) {
	rs, ok := p.reg.Schema(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSection, tag)
	}
	if len(line) < rs.MinLength {
		return nil, fmt.Errorf("%w: %s needs %d columns, got %d",
			domain.ErrLineTooShort, tag, rs.MinLength, len(line))
	}
	fv := make(fieldValues, len(rs.Fields))
	for _, f := range rs.Fields {
		fv[f.Name] = Extract(line, f)
	}
	return fv, nil
}

// ParseBus parses a DBAR line.
func (p *RecordParser) ParseBus(line string) (domain.Bus, error) {
	fv, err := p.extract(domain.SectionBus, line)
	if err != nil {
		return domain.Bus{}, err
	}
	return domain.Bus{
		Number:           fv.integer("number"),
		Operation:        fv.str("operation"),
		State:            fv.state("state"),
		Type:             fv.integer("type"),
		VoltageGroup:     fv.str("voltage_group"),
		Name:             fv.str("name"),
		LimitGroup:       fv.str("limit_group"),
		Voltage:          fv.real("voltage"),
		Angle:            fv.real("angle"),
		ActiveGen:        fv.real("active_generation"),
		ReactiveGen:      fv.real("reactive_generation"),
		MinReactiveGen:   fv.real("min_reactive_generation"),
		MaxReactiveGen:   fv.real("max_reactive_generation"),
		ControlledBus:    fv.integer("controlled_bus"),
		ActiveLoad:       fv.real("active_load"),
		ReactiveLoad:     fv.real("reactive_load"),
		CapacitorReactor: fv.real("capacitor_reactor"),
		Area:             fv.integer("area"),
		LoadVoltage:      fv.real("load_voltage"),
	}, nil
}

// ParseLine parses a DLIN line.
func (p *RecordParser) ParseLine(line string) (domain.Line, error) {
	fv, err := p.extract(domain.SectionLine, line)
	if err != nil {
		return domain.Line{}, err
	}
	return domain.Line{
		FromBus:           fv.integer("from_bus"),
		ToBus:             fv.integer("to_bus"),
		Circuit:           fv.integer("circuit"),
		State:             fv.state("state"),
		Resistance:        fv.real("resistance"),
		Reactance:         fv.real("reactance"),
		Susceptance:       fv.real("susceptance"),
		Tap:               fv.str("tap"),
		TapMin:            fv.real("tap_min"),
		TapMax:            fv.real("tap_max"),
		PhaseShift:        fv.real("phase_shift"),
		NormalCapacity:    fv.real("normal_capacity"),
		EmergencyCapacity: fv.real("emergency_capacity"),
	}, nil
}

// ParseGenerator parses a DGER line.
func (p *RecordParser) ParseGenerator(line string) (domain.Generator, error) {
	fv, err := p.extract(domain.SectionGenerator, line)
	if err != nil {
		return domain.Generator{}, err
	}
	return domain.Generator{
		Number:              fv.integer("number"),
		Operation:           fv.str("operation"),
		MinActiveGen:        fv.real("min_active_generation"),
		MaxActiveGen:        fv.real("max_active_generation"),
		ParticipationFactor: fv.real("participation_factor"),
		RemoteParticipation: fv.real("remote_control_participation_factor"),
	}, nil
}

// ParseSeriesCompensator parses a DCSC line.
func (p *RecordParser) ParseSeriesCompensator(line string) (domain.SeriesCompensator, error) {
	fv, err := p.extract(domain.SectionSeriesCompensator, line)
	if err != nil {
		return domain.SeriesCompensator{}, err
	}
	return domain.SeriesCompensator{
		FromBus:             fv.integer("from_bus"),
		Operation:           fv.str("operation"),
		ToBus:               fv.integer("to_bus"),
		Circuit:             fv.integer("circuit"),
		State:               fv.state("state"),
		Owner:               fv.str("owner"),
		Bypass:              fv.str("bypass"),
		MinReactance:        fv.real("min_reactance"),
		MaxReactance:        fv.real("max_reactance"),
		InitialReactance:    fv.real("initial_reactance"),
		ControlMode:         fv.str("control_mode"),
		Capacity:            fv.real("capacity"),
		MeasurementTerminal: fv.integer("measurement_terminal"),
		Stages:              fv.integer("number_of_stages"),
	}, nil
}

// ParseReactiveCompensator parses a DCER line.
func (p *RecordParser) ParseReactiveCompensator(line string) (domain.ReactiveCompensator, error) {
	fv, err := p.extract(domain.SectionReactiveCompensator, line)
	if err != nil {
		return domain.ReactiveCompensator{}, err
	}
	return domain.ReactiveCompensator{
		Bus:            fv.integer("bus"),
		Operation:      fv.str("operation"),
		Group:          fv.integer("group"),
		Units:          fv.integer("units"),
		ControlledBus:  fv.integer("controlled_bus"),
		Slope:          fv.real("slope"),
		ReactiveGen:    fv.real("reactive_generation"),
		MinReactiveGen: fv.real("min_reactive_generation"),
		MaxReactiveGen: fv.real("max_reactive_generation"),
		ControlMode:    fv.str("control_mode"),
		State:          fv.state("state"),
	}, nil
}

// ParseShuntDevice parses a DSHL line.
func (p *RecordParser) ParseShuntDevice(line string) (domain.ShuntDevice, error) {
	fv, err := p.extract(domain.SectionShuntDevice, line)
	if err != nil {
		return domain.ShuntDevice{}, err
	}
	return domain.ShuntDevice{
		FromBus:   fv.integer("from_bus"),
		Operation: fv.str("operation"),
		ToBus:     fv.integer("to_bus"),
		Circuit:   fv.integer("circuit"),
		ShuntFrom: fv.real("shunt_from"),
		ShuntTo:   fv.real("shunt_to"),
		StateFrom: fv.state("state_from"),
		StateTo:   fv.state("state_to"),
	}, nil
}
