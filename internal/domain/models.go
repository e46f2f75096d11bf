package domain

// Bus is a DBAR record: a network node with voltage, generation, load, and
// an accumulated shunt susceptance. CapacitorReactor starts at the declared
// Sh field value and is only ever increased by the integration engine.
type Bus struct {
	Number         int       `json:"number"`
	Operation      string    `json:"operation"`
	State          ConnState `json:"state"`
	Type           int       `json:"type"`
	VoltageGroup   string    `json:"voltage_group"`
	Name           string    `json:"name"`
	LimitGroup     string    `json:"limit_group"`
	Voltage        float64   `json:"voltage"`
	Angle          float64   `json:"angle"`
	ActiveGen      float64   `json:"active_generation"`
	ReactiveGen    float64   `json:"reactive_generation"`
	MinReactiveGen float64   `json:"min_reactive_generation"`
	MaxReactiveGen float64   `json:"max_reactive_generation"`
	ControlledBus  int       `json:"controlled_bus"`
	ActiveLoad     float64   `json:"active_load"`
	ReactiveLoad   float64   `json:"reactive_load"`

	// CapacitorReactor accumulates shunt contributions (Mvar).
	CapacitorReactor float64 `json:"capacitor_reactor"`

	Area        int     `json:"area"`
	LoadVoltage float64 `json:"load_voltage"`
}

// Line is a DLIN record: a circuit between two buses. Identity is
// (FromBus, ToBus, Circuit); endpoint order is not significant when matching
// shunt devices against lines.
type Line struct {
	FromBus     int       `json:"from_bus"`
	ToBus       int       `json:"to_bus"`
	Circuit     int       `json:"circuit"`
	State       ConnState `json:"state"`
	Resistance  float64   `json:"resistance"`  // percent
	Reactance   float64   `json:"reactance"`   // percent
	Susceptance float64   `json:"susceptance"` // Mvar

	// Tap is empty when the branch is a plain line; a value marks it as a
	// transformer in the case-modeling output.
	Tap        string  `json:"tap"`
	TapMin     float64 `json:"tap_min"`
	TapMax     float64 `json:"tap_max"`
	PhaseShift float64 `json:"phase_shift"`

	NormalCapacity    float64 `json:"normal_capacity"`
	EmergencyCapacity float64 `json:"emergency_capacity"`
}

// Generator is a DGER record holding active-generation limits for a bus.
// The bus reference is not required to resolve.
type Generator struct {
	Number              int     `json:"number"`
	Operation           string  `json:"operation"`
	MinActiveGen        float64 `json:"min_active_generation"`
	MaxActiveGen        float64 `json:"max_active_generation"`
	ParticipationFactor float64 `json:"participation_factor"`
	RemoteParticipation float64 `json:"remote_control_participation_factor"`
}

// SeriesCompensator is a DCSC record: a controllable series element on a
// circuit between two buses.
type SeriesCompensator struct {
	FromBus             int       `json:"from_bus"`
	Operation           string    `json:"operation"`
	ToBus               int       `json:"to_bus"`
	Circuit             int       `json:"circuit"`
	State               ConnState `json:"state"`
	Owner               string    `json:"owner"`
	Bypass              string    `json:"bypass"`
	MinReactance        float64   `json:"min_reactance"`
	MaxReactance        float64   `json:"max_reactance"`
	InitialReactance    float64   `json:"initial_reactance"`
	ControlMode         string    `json:"control_mode"`
	Capacity            float64   `json:"capacity"`
	MeasurementTerminal int       `json:"measurement_terminal"`
	Stages              int       `json:"number_of_stages"`
}

// ReactiveCompensator is a DCER record: a static reactive compensator
// attached to a bus and controlling a (possibly different) bus voltage.
type ReactiveCompensator struct {
	Bus            int       `json:"bus"`
	Operation      string    `json:"operation"`
	Group          int       `json:"group"`
	Units          int       `json:"units"`
	ControlledBus  int       `json:"controlled_bus"`
	Slope          float64   `json:"slope"`
	ReactiveGen    float64   `json:"reactive_generation"`
	MinReactiveGen float64   `json:"min_reactive_generation"`
	MaxReactiveGen float64   `json:"max_reactive_generation"`
	ControlMode    string    `json:"control_mode"`
	State          ConnState `json:"state"`
}

// Bank is a single group line inside a DBSH block.
type Bank struct {
	GroupID           int       `json:"group_id"`
	State             ConnState `json:"state"`
	UnitsInOperation  int       `json:"units_in_operation"`
	UnitReactivePower float64   `json:"unit_reactive_power"`
}

// ShuntBank is a DBSH record: a switchable shunt bank tied to a terminal
// bus, with its per-group banks and the derived total shunt over connected
// groups.
type ShuntBank struct {
	FromBus                  int     `json:"from_bus"`
	ToBus                    *int    `json:"to_bus"`
	ControlMode              string  `json:"control_mode"`
	InitialReactiveInjection float64 `json:"initial_reactive_injection"`

	// TerminalBus receives the total shunt during integration. Defaults to
	// FromBus when the header leaves it blank.
	TerminalBus int     `json:"terminal_bus"`
	TotalShunt  float64 `json:"total_shunt"`
	Banks       []Bank  `json:"banks"`
}

// ShuntDevice is a DSHL record: shunt elements attached to the ends of an
// existing circuit.
type ShuntDevice struct {
	FromBus   int       `json:"from_bus"`
	Operation string    `json:"operation"`
	ToBus     int       `json:"to_bus"`
	Circuit   int       `json:"circuit"`
	ShuntFrom float64   `json:"shunt_from"`
	ShuntTo   float64   `json:"shunt_to"`
	StateFrom ConnState `json:"state_from"`
	StateTo   ConnState `json:"state_to"`
}

// Metadata describes one conversion run.
type Metadata struct {
	Source       string `json:"file_path"`
	Status       string `json:"status"`
	Title        string `json:"title,omitempty"`
	ConversionID string `json:"conversion_id,omitempty"`
}

// Document is the in-memory model of one parsed case file. It has exactly
// one writer at a time: the scanner during parsing, then the integration
// engine, after which it is read-only.
type Document struct {
	Title                string                `json:"-"`
	Buses                []Bus                 `json:"DBAR"`
	Lines                []Line                `json:"DLIN"`
	Generators           []Generator           `json:"DGER"`
	SeriesCompensators   []SeriesCompensator   `json:"DCSC"`
	ReactiveCompensators []ReactiveCompensator `json:"DCER"`
	ShuntBanks           []ShuntBank           `json:"DBSH"`
	ShuntDevices         []ShuntDevice         `json:"DSHL"`
	Metadata             Metadata              `json:"metadata"`

	busIndex map[int]int
}

// NewDocument creates an empty Document for the given source identifier.
func NewDocument(source string) *Document {
	return &Document{
		Buses:                []Bus{},
		Lines:                []Line{},
		Generators:           []Generator{},
		SeriesCompensators:   []SeriesCompensator{},
		ReactiveCompensators: []ReactiveCompensator{},
		ShuntBanks:           []ShuntBank{},
		ShuntDevices:         []ShuntDevice{},
		Metadata:             Metadata{Source: source},
	}
}

// BusByNumber returns a pointer into the bus table for the given bus number,
// or nil when no such bus exists. Bus numbers are expected to be unique; if
// the input violates that, the first record wins, matching a linear scan.
// The lookup index is built lazily and invalidated by AddBus.
func (d *Document) BusByNumber(n int) *Bus {
	if d.busIndex == nil {
		d.busIndex = make(map[int]int, len(d.Buses))
		for i := range d.Buses {
			if _, ok := d.busIndex[d.Buses[i].Number]; !ok {
				d.busIndex[d.Buses[i].Number] = i
			}
		}
	}
	i, ok := d.busIndex[n]
	if !ok {
		return nil
	}
	return &d.Buses[i]
}

// AddBus appends a bus record and invalidates the number index.
func (d *Document) AddBus(b Bus) {
	d.Buses = append(d.Buses, b)
	d.busIndex = nil
}

// LineByEndpoints returns the first line whose unordered endpoint pair
// matches {a, b}, or nil.
func (d *Document) LineByEndpoints(a, b int) *Line {
	for i := range d.Lines {
		l := &d.Lines[i]
		if (l.FromBus == a && l.ToBus == b) || (l.FromBus == b && l.ToBus == a) {
			return l
		}
	}
	return nil
}
