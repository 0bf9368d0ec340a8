package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"math"

	"github.com/ternarybob/finhealth/internal/services/report"
	"github.com/ternarybob/finhealth/internal/services/scoring"
)

// PageFuncs are the helpers available to the page templates.
func PageFuncs() template.FuncMap {
	return template.FuncMap{
		"money": report.FormatMoney,
		// Status colors are rgba() literals from the scoring package.
		"css": func(s string) template.CSS {
			return template.CSS(s)
		},
		"fixed2": func(v *float64) string {
			if v == nil {
				return "N/A"
			}
			return fmt.Sprintf("%.2f", *v)
		},
		"gauge": func(z *float64) template.CSS {
			if z == nil {
				return "0"
			}
			return widthCSS(*z / scoring.ZScoreGaugeMax(z) * 100)
		},
		"percent": func(p *float64) string {
			if p == nil {
				return "N/A"
			}
			return report.FormatPercent(*p)
		},
		"percentWidth": func(p *float64) template.CSS {
			if p == nil {
				return "0"
			}
			return widthCSS(*p * 100)
		},
		"ratio": report.FormatPercent,
		"dict":  dict,
	}
}

func widthCSS(pct float64) template.CSS {
	if math.IsNaN(pct) {
		pct = 0
	}
	pct = math.Max(0, math.Min(100, pct))
	return template.CSS(fmt.Sprintf("%.1f", pct))
}

// dict builds a map from alternating keys and values for sub-template calls.
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict requires an even number of arguments")
	}
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
