package format

import (
	"testing"

	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		code     string
		expected string
	}{
		{"USD thousands", 1234.56, "USD", "$1,234.56"},
		{"Empty code is dollars", 12, "", "$12.00"},
		{"Local code", 1100000, "TRY", "TRY 1,100,000.00"},
		{"Negative", -1234.5, "USD", "-$1,234.50"},
		{"Rounds half away from zero", 0.125, "USD", "$0.13"},
		{"Negative zero after rounding", -0.001, "USD", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount, tt.code); got != tt.expected {
				t.Errorf("Currency(%v, %q) = %q, expected %q", tt.amount, tt.code, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(-9876543.219); got != "-9,876,543.22" {
		t.Errorf("NumericCurrency() = %q", got)
	}
	if got := NumericCurrency(999); got != "999.00" {
		t.Errorf("NumericCurrency() = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(nil); got != NotApplicable {
		t.Errorf("Percent(nil) = %q, expected %q", got, NotApplicable)
	}
	if got := Percent(mathutil.Ptr(0.75)); got != "75.0%" {
		t.Errorf("Percent(0.75) = %q", got)
	}
	if got := Percent(mathutil.Ptr(0.6543)); got != "65.4%" {
		t.Errorf("Percent(0.6543) = %q", got)
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{30, "30"},
		{1250, "1,250"},
		{-12, "-12"},
		{2.5, "2.50"},
	}
	for _, tt := range tests {
		if got := Count(tt.value); got != tt.expected {
			t.Errorf("Count(%v) = %q, expected %q", tt.value, got, tt.expected)
		}
	}
}

func TestFixedAndRoundMoney(t *testing.T) {
	if got := Fixed(110000, 2); got != "110000.00" {
		t.Errorf("Fixed() = %q", got)
	}
	if got := RoundMoney(10.005); got != 10.01 {
		t.Errorf("RoundMoney(10.005) = %v", got)
	}
}
