// Package ampl renders an enriched Document as the fixed-format AMPL-style
// data block consumed by the downstream modeling tools. Field widths and
// precisions are a display contract and must stay byte-stable.
package ampl

import (
	"fmt"
	"io"

	"pwfconv/internal/domain"
)

// Writer renders the case-modeling text block. It reads the Document and
// never mutates it.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter creates a Writer targeting w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteDocument renders the whole case: base power preamble, then the bus,
// line, series-compensator, and reactive-compensator sections, each
// filtered by connectivity and unit-converted for the per-unit system.
func (wr *Writer) WriteDocument(doc *domain.Document) error {
	if doc.Title != "" {
		wr.printf("# %s\n", doc.Title)
	}
	wr.printf("param BASE := %d;\n\n", int(domain.BasePowerMVA))

	wr.writeBuses(doc)
	wr.writeLines(doc)
	wr.writeSeriesCompensators(doc)
	wr.writeReactiveCompensators(doc)

	return wr.err
}

func (wr *Writer) printf(format string, args ...any) {
	if wr.err != nil {
		return
	}
	_, wr.err = fmt.Fprintf(wr.w, format, args...)
}

// connectedBus reports whether the numbered bus exists and is connected.
func connectedBus(doc *domain.Document, n int) bool {
	b := doc.BusByNumber(n)
	return b != nil && b.State.IsConnected()
}

// writeBuses emits connected buses. Active limits come from the generator
// table joined by bus number; a bus without a generator record renders the
// unbounded sentinels. Reactive limits are the bus's own fields, whose
// schema defaults are already the sentinels. Voltage converts from the
// kV-scaled input to per unit.
func (wr *Writer) writeBuses(doc *domain.Document) {
	gens := make(map[int]*domain.Generator, len(doc.Generators))
	for i := range doc.Generators {
		gens[doc.Generators[i].Number] = &doc.Generators[i]
	}

	wr.printf("param: DBAR: type V theta Pg Qg Qmin Qmax Pl Ql Sh Pmin Pmax :=\n")
	for i := range doc.Buses {
		b := &doc.Buses[i]
		if !b.State.IsConnected() {
			continue
		}
		pmin, pmax := domain.NegInfinity, domain.Infinity
		if g, ok := gens[b.Number]; ok {
			pmin, pmax = g.MinActiveGen, g.MaxActiveGen
		}
		wr.printf("%5d %3d %8.3f %8.2f %9.2f %9.2f %10.2f %10.2f %9.2f %9.2f %9.2f %10.2f %10.2f\n",
			b.Number, b.Type, b.Voltage/domain.KVDivisor, b.Angle,
			b.ActiveGen, b.ReactiveGen, b.MinReactiveGen, b.MaxReactiveGen,
			b.ActiveLoad, b.ReactiveLoad, b.CapacitorReactor, pmin, pmax)
	}
	wr.printf(";\n\n")
}

// writeLines emits circuits that are connected and whose both end buses are
// connected, re-indexed with a contiguous sequence number. Impedances
// convert from percent to per unit. A blank tap renders as a plain line
// (tap 0, transformer flag 0); a present tap passes through with the flag
// set.
func (wr *Writer) writeLines(doc *domain.Document) {
	wr.printf("param: DLIN: from to circuit r x b tap tr phase cap :=\n")
	seq := 0
	for i := range doc.Lines {
		l := &doc.Lines[i]
		if !l.State.IsConnected() {
			continue
		}
		if !connectedBus(doc, l.FromBus) || !connectedBus(doc, l.ToBus) {
			continue
		}
		seq++
		tap, tr := tapValue(l.Tap)
		wr.printf("%5d %5d %5d %2d %10.7f %10.7f %10.7f %8.3f %2d %8.2f %9.2f\n",
			seq, l.FromBus, l.ToBus, l.Circuit,
			l.Resistance/domain.PercentDivisor,
			l.Reactance/domain.PercentDivisor,
			l.Susceptance/domain.PercentDivisor,
			tap, tr, l.PhaseShift, l.NormalCapacity)
	}
	wr.printf(";\n\n")
}

// tapValue resolves the tap field: blank means no transformer.
func tapValue(tap string) (float64, int) {
	if tap == "" {
		return 0, 0
	}
	var v float64
	if _, err := fmt.Sscanf(tap, "%f", &v); err != nil {
		return 0, 0
	}
	return v, 1
}

func (wr *Writer) writeSeriesCompensators(doc *domain.Document) {
	wr.printf("param: DCSC: from to circuit mode xmin xmax xinit cap :=\n")
	seq := 0
	for i := range doc.SeriesCompensators {
		c := &doc.SeriesCompensators[i]
		if !c.State.IsConnected() {
			continue
		}
		if !connectedBus(doc, c.FromBus) || !connectedBus(doc, c.ToBus) {
			continue
		}
		seq++
		mode, ok := domain.SeriesControlModes[c.ControlMode]
		if !ok {
			mode = domain.DefaultControlMode
		}
		wr.printf("%5d %5d %5d %2d %2d %11.2f %11.2f %11.2f %10.2f\n",
			seq, c.FromBus, c.ToBus, c.Circuit, mode,
			c.MinReactance, c.MaxReactance, c.InitialReactance, c.Capacity)
	}
	wr.printf(";\n\n")
}

func (wr *Writer) writeReactiveCompensators(doc *domain.Document) {
	wr.printf("param: DCER: bus ctrl mode slope Qmin Qmax :=\n")
	seq := 0
	for i := range doc.ReactiveCompensators {
		c := &doc.ReactiveCompensators[i]
		if !c.State.IsConnected() || !connectedBus(doc, c.Bus) {
			continue
		}
		seq++
		mode, ok := domain.ReactiveControlModes[c.ControlMode]
		if !ok {
			mode = domain.DefaultControlMode
		}
		wr.printf("%5d %5d %7d %2d %9.2f %10.2f %10.2f\n",
			seq, c.Bus, c.ControlledBus, mode,
			c.Slope, c.MinReactiveGen, c.MaxReactiveGen)
	}
	wr.printf(";\n")
}
