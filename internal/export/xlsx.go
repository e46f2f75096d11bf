package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"pwfconv/internal/domain"
)

// Workbook sheet names, one per record kind.
const (
	sheetBuses                = "Buses"
	sheetLines                = "Lines"
	sheetGenerators           = "Generators"
	sheetSeriesCompensators   = "Series Compensators"
	sheetReactiveCompensators = "Reactive Compensators"
	sheetShuntBanks           = "Shunt Banks"
	sheetShuntDevices         = "Shunt Devices"
)

// WriteXLSX writes the document as a workbook with one sheet per record
// kind. Sheets for empty sections are still created so the workbook shape
// is stable across cases.
func WriteXLSX(w io.Writer, doc *domain.Document) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeSheet(f, sheetBuses, busColumns, busRows(doc.Buses)); err != nil {
		return err
	}
	if err := writeSheet(f, sheetLines, lineColumns, lineRows(doc.Lines)); err != nil {
		return err
	}
	if err := writeSheet(f, sheetGenerators, generatorColumns, generatorRows(doc.Generators)); err != nil {
		return err
	}
	if err := writeSheet(f, sheetSeriesCompensators, seriesColumns, seriesRows(doc.SeriesCompensators)); err != nil {
		return err
	}
	if err := writeSheet(f, sheetReactiveCompensators, reactiveColumns, reactiveRows(doc.ReactiveCompensators)); err != nil {
		return err
	}
	if err := writeSheet(f, sheetShuntBanks, shuntBankColumns, shuntBankRows(doc.ShuntBanks)); err != nil {
		return err
	}
	if err := writeSheet(f, sheetShuntDevices, shuntDeviceColumns, shuntDeviceRows(doc.ShuntDevices)); err != nil {
		return err
	}

	// The default sheet excelize creates is replaced by the bus sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	idx, err := f.GetSheetIndex(sheetBuses)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	return f.Write(w)
}

// writeSheet creates a sheet and fills the header row plus one row per
// record.
func writeSheet(f *excelize.File, name string, header []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(name, cell, &hdr); err != nil {
		return fmt.Errorf("write header of sheet %s: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write row %d of sheet %s: %w", i+2, name, err)
		}
	}
	return nil
}

var generatorColumns = []string{
	"Number",
	"Min Active Generation",
	"Max Active Generation",
	"Participation Factor",
	"Remote Participation Factor",
}

var seriesColumns = []string{
	"From Bus",
	"To Bus",
	"Circuit",
	"State",
	"Bypass",
	"Min Reactance",
	"Max Reactance",
	"Initial Reactance",
	"Control Mode",
	"Capacity",
	"Stages",
}

var reactiveColumns = []string{
	"Bus",
	"Group",
	"Units",
	"Controlled Bus",
	"Slope",
	"Reactive Generation",
	"Min Reactive Generation",
	"Max Reactive Generation",
	"Control Mode",
	"State",
}

var shuntBankColumns = []string{
	"From Bus",
	"To Bus",
	"Control Mode",
	"Initial Reactive Injection",
	"Terminal Bus",
	"Total Shunt",
	"Bank Groups",
}

var shuntDeviceColumns = []string{
	"From Bus",
	"To Bus",
	"Circuit",
	"Shunt From",
	"Shunt To",
	"State From",
	"State To",
}

func busRows(buses []domain.Bus) [][]any {
	rows := make([][]any, len(buses))
	for i := range buses {
		b := &buses[i]
		rows[i] = []any{
			b.Number, string(b.State), b.Type, b.Name,
			b.Voltage, b.Angle,
			b.ActiveGen, b.ReactiveGen, b.MinReactiveGen, b.MaxReactiveGen,
			b.ControlledBus, b.ActiveLoad, b.ReactiveLoad,
			b.CapacitorReactor, b.Area,
		}
	}
	return rows
}

func lineRows(lines []domain.Line) [][]any {
	rows := make([][]any, len(lines))
	for i := range lines {
		l := &lines[i]
		rows[i] = []any{
			l.FromBus, l.ToBus, l.Circuit, string(l.State),
			l.Resistance, l.Reactance, l.Susceptance,
			l.Tap, l.TapMin, l.TapMax, l.PhaseShift,
			l.NormalCapacity, l.EmergencyCapacity,
		}
	}
	return rows
}

func generatorRows(gens []domain.Generator) [][]any {
	rows := make([][]any, len(gens))
	for i := range gens {
		g := &gens[i]
		rows[i] = []any{
			g.Number, g.MinActiveGen, g.MaxActiveGen,
			g.ParticipationFactor, g.RemoteParticipation,
		}
	}
	return rows
}

func seriesRows(cs []domain.SeriesCompensator) [][]any {
	rows := make([][]any, len(cs))
	for i := range cs {
		c := &cs[i]
		rows[i] = []any{
			c.FromBus, c.ToBus, c.Circuit, string(c.State), c.Bypass,
			c.MinReactance, c.MaxReactance, c.InitialReactance,
			c.ControlMode, c.Capacity, c.Stages,
		}
	}
	return rows
}

func reactiveRows(cs []domain.ReactiveCompensator) [][]any {
	rows := make([][]any, len(cs))
	for i := range cs {
		c := &cs[i]
		rows[i] = []any{
			c.Bus, c.Group, c.Units, c.ControlledBus, c.Slope,
			c.ReactiveGen, c.MinReactiveGen, c.MaxReactiveGen,
			c.ControlMode, string(c.State),
		}
	}
	return rows
}

func shuntBankRows(sbs []domain.ShuntBank) [][]any {
	rows := make([][]any, len(sbs))
	for i := range sbs {
		sb := &sbs[i]
		toBus := any("")
		if sb.ToBus != nil {
			toBus = *sb.ToBus
		}
		rows[i] = []any{
			sb.FromBus, toBus, sb.ControlMode,
			sb.InitialReactiveInjection, sb.TerminalBus,
			sb.TotalShunt, len(sb.Banks),
		}
	}
	return rows
}

func shuntDeviceRows(sds []domain.ShuntDevice) [][]any {
	rows := make([][]any, len(sds))
	for i := range sds {
		sd := &sds[i]
		rows[i] = []any{
			sd.FromBus, sd.ToBus, sd.Circuit,
			sd.ShuntFrom, sd.ShuntTo,
			string(sd.StateFrom), string(sd.StateTo),
		}
	}
	return rows
}
