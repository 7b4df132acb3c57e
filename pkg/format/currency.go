// Package format renders report values for people: money with separators,
// percentages, head counts, and the em-dash used for "not applicable".
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/school-forecast/pkg/constants"
	"github.com/shopspring/decimal"
)

// NotApplicable is rendered in place of a nil value.
const NotApplicable = "—"

// Currency returns a currency string with the currency code or dollar sign and
// thousands separators (e.g., "-$1,234.56", "TRY 1,234.56").
func Currency(amount float64, code string) string {
	formatted := formatPositive(math.Abs(amount), constants.DecimalPlaces)
	sign := ""
	if amount < 0 && formatted != "0.00" {
		sign = "-"
	}
	if code == "" || strings.EqualFold(code, constants.CurrencyUSD) {
		return sign + "$" + formatted
	}
	return sign + strings.ToUpper(code) + " " + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	formatted := formatPositive(math.Abs(amount), constants.DecimalPlaces)
	if amount < 0 && formatted != "0.00" {
		return "-" + formatted
	}
	return formatted
}

// Fixed rounds half away from zero to the given places and returns the plain
// decimal string, suitable for CSV cells.
func Fixed(amount float64, places int32) string {
	return decimal.NewFromFloat(amount).StringFixed(places)
}

// RoundMoney rounds an amount to cents the same way Fixed renders it.
func RoundMoney(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(constants.DecimalPlaces).Float64()
	return f
}

// Percent renders a ratio (0.75) as "75.0%". A nil ratio renders as NotApplicable.
func Percent(ratio *float64) string {
	if ratio == nil {
		return NotApplicable
	}
	percent := *ratio * constants.PercentageMultiplier
	return decimal.NewFromFloat(percent).StringFixed(1) + "%"
}

// Count renders a head count or seat count with separators and no decimals
// unless the value is fractional.
func Count(value float64) string {
	if value == math.Trunc(value) {
		return formatPositiveInt(math.Abs(value), value < 0)
	}
	return NumericCurrency(value)
}

func formatPositiveInt(value float64, negative bool) string {
	intPart := group(decimal.NewFromFloat(value).StringFixed(0))
	if negative && intPart != "0" {
		return "-" + intPart
	}
	return intPart
}

func formatPositive(value float64, places int32) string {
	formatted := decimal.NewFromFloat(value).StringFixed(places)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := group(parts[0])
	if len(parts) == 2 {
		return intPart + "." + parts[1]
	}
	return intPart
}

func group(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
