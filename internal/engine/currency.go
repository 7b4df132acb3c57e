package engine

import (
	"strings"

	"github.com/iwvelando/school-forecast/pkg/constants"
	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

// ToDisplay converts an amount entered in the entry currency to the display
// currency. fxRate is local currency units per USD. Local amounts are divided
// by the rate for USD display and USD amounts are multiplied by it for local
// display. A rate that is not positive passes the amount through unchanged.
func ToDisplay(amount float64, entry, display string, fxRate float64) float64 {
	amount = mathutil.Finite(amount)
	entry, display = normalizeCurrency(entry), normalizeCurrency(display)
	fxRate = mathutil.Finite(fxRate)
	if entry == display || fxRate <= 0 {
		return amount
	}
	if display == constants.CurrencyUSD {
		return amount / fxRate
	}
	return amount * fxRate
}

// effectiveDisplay resolves the currency amounts actually end up in. An empty
// display currency means the entry currency; without a usable rate nothing is
// converted, so the entry currency is kept.
func effectiveDisplay(entry, display string, fxRate float64) string {
	entry = normalizeCurrency(entry)
	if strings.TrimSpace(display) == "" || mathutil.Finite(fxRate) <= 0 {
		return entry
	}
	return normalizeCurrency(display)
}

func normalizeCurrency(code string) string {
	if strings.EqualFold(strings.TrimSpace(code), constants.CurrencyUSD) {
		return constants.CurrencyUSD
	}
	return constants.CurrencyLocal
}
