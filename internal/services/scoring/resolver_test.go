package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProblematic(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  bool
	}{
		{"nan", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
		{"zero", 0, true},
		{"tiny", 5e-7, true},
		{"tiny negative", -5e-7, true},
		{"at threshold", 1e-6, false},
		{"negative", -42, false},
		{"positive", 1e9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProblematic(tt.value); got != tt.want {
				t.Errorf("IsProblematic(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tbl := table(map[string][]float64{
		"Total Assets": {math.NaN(), 900},
		"TotalAssets":  {1000, 850},
		"totalAssets":  {0, 0},
	})

	v, name, ok := Resolve(tbl, FieldTotalAssets.Names, 0)
	assert.True(t, ok)
	assert.Equal(t, "TotalAssets", name)
	assert.Equal(t, 1000.0, v)

	v, name, ok = Resolve(tbl, FieldTotalAssets.Names, 1)
	assert.True(t, ok)
	assert.Equal(t, "Total Assets", name)
	assert.Equal(t, 900.0, v)

	_, _, ok = Resolve(tbl, FieldTotalAssets.Names, 2)
	assert.False(t, ok)

	_, _, ok = Resolve(nil, FieldTotalAssets.Names, 0)
	assert.False(t, ok)

	_, _, ok = Resolve(tbl, []string{"totalAssets"}, 0)
	assert.False(t, ok)
}

func TestChainResolve(t *testing.T) {
	tbl := table(map[string][]float64{
		"EBITDA":       {200},
		"Depreciation": {50},
	})

	chain := Chain{
		Label: "EBIT",
		Strategies: []Strategy{
			FromTable(tbl, FieldEBIT),
			Derived("EBIT (calculated from EBITDA - Depreciation)", func(*Notes) float64 {
				return Get(tbl, FieldEBITDA) - Get(tbl, FieldDepreciation)
			}),
		},
	}

	n := newNotes()
	v, ok := chain.Resolve(&n)
	assert.True(t, ok)
	assert.Equal(t, 150.0, v)
	assert.Equal(t, []string{"EBIT (calculated from EBITDA - Depreciation)"}, n.Substituted)
	assert.Empty(t, n.Problematic)
}

func TestChainResolve_AllFail(t *testing.T) {
	chain := Chain{
		Label: "Total Liabilities",
		Strategies: []Strategy{
			FromValue(0),
			Derived("never recorded", func(*Notes) float64 { return math.NaN() }),
		},
	}

	n := newNotes()
	v, ok := chain.Resolve(&n)
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, []string{"Total Liabilities"}, n.Problematic)
	assert.Empty(t, n.Substituted)
}

func TestChainResolve_PrimaryHasNoNote(t *testing.T) {
	n := newNotes()
	v, ok := Chain{Label: "Market Value", Strategies: []Strategy{FromValue(42)}}.Resolve(&n)
	assert.True(t, ok)
	assert.Equal(t, 42.0, v)
	assert.False(t, n.HasNotes())
}
