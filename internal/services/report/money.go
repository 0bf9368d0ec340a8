package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney formats amount in the given ISO currency, e.g. "$1,500,000.00".
// Unknown currencies fall back to a plain grouped number with the code appended.
func FormatMoney(amount float64, currency string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "N/A"
	}

	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = money.USD
	}

	cur := money.GetCurrency(code)
	if cur == nil {
		return fmt.Sprintf("%s %s", groupThousands(decimal.NewFromFloat(amount).StringFixed(0)), code)
	}

	factor := decimal.New(1, int32(cur.Fraction))
	minor := decimal.NewFromFloat(amount).Mul(factor).Round(0)
	return money.New(minor.IntPart(), code).Display()
}

// groupThousands inserts commas into an integer string, keeping any sign.
func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}

// FormatPercent formats a ratio as a percentage with one decimal, e.g. 0.125 -> "12.5%".
func FormatPercent(ratio float64) string {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return "N/A"
	}
	return decimal.NewFromFloat(ratio).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
