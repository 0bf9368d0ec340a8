package scoring

import (
	"math"

	"github.com/ternarybob/finhealth/internal/models"
)

// problematicEpsilon is the magnitude below which a value is treated as missing.
const problematicEpsilon = 1e-6

// IsProblematic reports whether a value is unusable as a financial input:
// NaN, infinite, zero, or smaller in magnitude than 1e-6.
func IsProblematic(v float64) bool {
	return math.IsNaN(v) ||
		math.IsInf(v, 0) ||
		v == 0 ||
		math.Abs(v) < problematicEpsilon
}

// Field is a metric and the names vendors report it under, in priority order.
type Field struct {
	Label string
	Names []string
}

// Resolve returns the first non-problematic value found under any of the names
// at the given period index (0 = most recent). It returns 0, "" and false when
// none of the names yields a usable value.
func Resolve(table *models.StatementTable, names []string, index int) (float64, string, bool) {
	if table == nil {
		return 0, "", false
	}
	for _, name := range names {
		v, ok := table.Value(name, index)
		if !ok {
			continue
		}
		if !IsProblematic(v) {
			return v, name, true
		}
	}
	return 0, "", false
}

// Get resolves a field at the most recent period, returning 0 when absent.
func Get(table *models.StatementTable, f Field) float64 {
	v, _, _ := Resolve(table, f.Names, 0)
	return v
}

// Strategy is one way of obtaining a value. Note is recorded as a substitution
// when the strategy succeeds; the primary strategy leaves it empty.
// Value may record intermediate notes of its own.
type Strategy struct {
	Note  string
	Value func(n *Notes) float64
}

// Chain is an ordered list of strategies for one input.
type Chain struct {
	Label      string
	Strategies []Strategy
}

// Resolve evaluates the strategies in order and returns the first non-problematic
// value. When every strategy fails, Label is recorded as problematic (if set)
// and 0, false is returned.
func (c Chain) Resolve(n *Notes) (float64, bool) {
	for _, s := range c.Strategies {
		v := s.Value(n)
		if IsProblematic(v) {
			continue
		}
		if s.Note != "" {
			n.Substitute(s.Note)
		}
		return v, true
	}

	if c.Label != "" {
		n.Problem(c.Label)
	}
	return 0, false
}

// FromTable is a strategy reading a field from a statement table.
func FromTable(table *models.StatementTable, f Field) Strategy {
	return Strategy{
		Value: func(*Notes) float64 {
			return Get(table, f)
		},
	}
}

// FromValue is a strategy returning a fixed, already-known value.
func FromValue(v float64) Strategy {
	return Strategy{
		Value: func(*Notes) float64 {
			return v
		},
	}
}

// Derived is a fallback strategy computing a value from other inputs.
func Derived(note string, fn func(n *Notes) float64) Strategy {
	return Strategy{Note: note, Value: fn}
}
