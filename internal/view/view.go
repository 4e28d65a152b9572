// Package view maps the dashboard inputs to the three plot outputs.
package view

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/plot"

	"popdash/internal/domain"
)

// Output slot names shared with the page.
const (
	SlotShow         = "show"
	SlotInitEpidemic = "init_epidemic"
	SlotPopContinent = "pop_continent"
)

// ErrUnknownSlot is returned for a slot name nothing is registered under.
var ErrUnknownSlot = errors.New("unknown output slot")

// Inputs is how a render function reads the current widget values. A value
// is validated when it is read, so only outputs that read it can fail on it.
type Inputs interface {
	World() (bool, error)
	Country() (string, error)
}

// RenderFunc builds a fresh plot for the current inputs.
type RenderFunc func(in Inputs) (*plot.Plot, error)

// Registry maps output slot names to their render functions.
type Registry map[string]RenderFunc

// Slots lists the registered slot names in sorted order.
func (r Registry) Slots() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render dispatches to the named slot.
func (r Registry) Render(slot string, in Inputs) (*plot.Plot, error) {
	fn, ok := r[slot]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	return fn(in)
}

// Tables is the read-only data every output draws from. It is built once
// at startup and never modified.
type Tables struct {
	Countries  []domain.CountryRecord
	Series     []domain.PopulationSeriesPoint
	Wide       domain.WideSeriesTable
	Daily      domain.DailySumTable
	Continents domain.ContinentSumTable
}

// Model holds the tables and produces the output registry.
type Model struct {
	tables Tables
}

// NewModel wraps tables for rendering.
func NewModel(tables Tables) *Model {
	return &Model{tables: tables}
}

// Outputs returns the slot registry to hand to the UI shell.
func (m *Model) Outputs() Registry {
	return Registry{
		SlotShow:         m.Show,
		SlotInitEpidemic: m.InitEpidemic,
		SlotPopContinent: m.PopContinent,
	}
}

// TickSpacing is the distance between major ticks when n positions are
// split into divisor intervals.
func TickSpacing(n int, divisor float64) float64 {
	return float64(n) / divisor
}
