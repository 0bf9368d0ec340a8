// Package models holds the data shapes shared between the market data fetcher,
// the score calculators and the presentation layer.
package models

import (
	"math"
	"sort"
	"time"
)

// StatementRow is a named metric with one value per reporting period,
// most recent period first. Missing periods are NaN.
type StatementRow struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// StatementTable is a financial statement (balance sheet, income statement)
// keyed by the vendor's metric name.
type StatementTable struct {
	Periods []time.Time              `json:"periods"`
	Rows    map[string]*StatementRow `json:"rows"`
}

// NewStatementTable creates an empty table for the given periods.
// Periods are sorted most recent first.
func NewStatementTable(periods []time.Time) *StatementTable {
	sorted := make([]time.Time, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].After(sorted[j])
	})

	return &StatementTable{
		Periods: sorted,
		Rows:    make(map[string]*StatementRow),
	}
}

// Set stores a value for the named metric at a period index.
func (t *StatementTable) Set(name string, index int, value float64) {
	if index < 0 || index >= len(t.Periods) {
		return
	}

	row, ok := t.Rows[name]
	if !ok {
		row = &StatementRow{Name: name, Values: make([]float64, len(t.Periods))}
		for i := range row.Values {
			row.Values[i] = math.NaN()
		}
		t.Rows[name] = row
	}
	row.Values[index] = value
}

// Value returns the value of a metric at a period index.
// The second return is false when the row or period does not exist.
func (t *StatementTable) Value(name string, index int) (float64, bool) {
	if t == nil {
		return math.NaN(), false
	}
	row, ok := t.Rows[name]
	if !ok || index < 0 || index >= len(row.Values) {
		return math.NaN(), false
	}
	return row.Values[index], true
}

// Has reports whether the table contains a row with the given name.
func (t *StatementTable) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.Rows[name]
	return ok
}

// Len returns the number of periods.
func (t *StatementTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Periods)
}
