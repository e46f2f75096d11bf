// Package integrate folds shunt contributions into the bus table after
// scanning has produced the complete Document. Both passes mutate the bus
// accumulator field and must run exactly once per Document, in order;
// re-running a pass double-counts.
package integrate

import (
	"pwfconv/internal/diag"
	"pwfconv/internal/domain"
)

// Engine applies the cross-section integration passes.
type Engine struct {
	diag *diag.Sink
}

// NewEngine creates an Engine reporting anomalies to the given sink.
func NewEngine(d *diag.Sink) *Engine {
	return &Engine{diag: d}
}

// Run executes both passes in their required order.
func (e *Engine) Run(doc *domain.Document) {
	e.IntegrateShuntBanks(doc)
	e.IntegrateShuntDevices(doc)
}

// IntegrateShuntBanks adds each shunt bank's total shunt to the bus matching
// its terminal bus. A bank referencing a nonexistent bus is skipped with a
// warning; the rest of the document stays valid.
func (e *Engine) IntegrateShuntBanks(doc *domain.Document) {
	for i := range doc.ShuntBanks {
		sb := &doc.ShuntBanks[i]
		bus := doc.BusByNumber(sb.TerminalBus)
		if bus == nil {
			e.diag.Warnf("shunt bank %d: terminal bus %d not found (from bus %d)",
				i+1, sb.TerminalBus, sb.FromBus)
			continue
		}
		bus.CapacitorReactor += sb.TotalShunt
	}
}

// IntegrateShuntDevices adds circuit shunt devices to their end buses. A
// device whose circuit cannot be matched by unordered endpoint pair is
// skipped; a matched but disconnected circuit contributes nothing. Each side
// is applied independently when its own state is connected, and a missing
// end bus is warned per side.
func (e *Engine) IntegrateShuntDevices(doc *domain.Document) {
	for i := range doc.ShuntDevices {
		sd := &doc.ShuntDevices[i]
		line := doc.LineByEndpoints(sd.FromBus, sd.ToBus)
		if line == nil {
			e.diag.Warnf("shunt device %d: no circuit %d-%d", i+1, sd.FromBus, sd.ToBus)
			continue
		}
		if line.State != domain.Connected {
			continue
		}

		if bus := doc.BusByNumber(sd.FromBus); bus == nil {
			e.diag.Warnf("shunt device %d: from bus %d not found", i+1, sd.FromBus)
		} else if sd.StateFrom == domain.Connected {
			bus.CapacitorReactor += sd.ShuntFrom
		}

		if bus := doc.BusByNumber(sd.ToBus); bus == nil {
			e.diag.Warnf("shunt device %d: to bus %d not found", i+1, sd.ToBus)
		} else if sd.StateTo == domain.Connected {
			bus.CapacitorReactor += sd.ShuntTo
		}
	}
}
