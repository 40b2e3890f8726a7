package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     int64
	}{
		{"49.99", "GBP", 4999},
		{"10.005", "GBP", 1001},
		{"10.004", "GBP", 1000},
		{"8.5", "eur", 850},
		{"1500.5", "JPY", 1501},
		{"0", "USD", 0},
	}

	for _, tc := range cases {
		t.Run(tc.amount+"_"+tc.currency, func(t *testing.T) {
			got := ToMinorUnits(decimal.RequireFromString(tc.amount), tc.currency)
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	if got := FromMinorUnits(4999, "GBP"); !got.Equal(decimal.RequireFromString("49.99")) {
		t.Fatalf("expected 49.99, got %s", got)
	}
	if got := FromMinorUnits(1501, "JPY"); !got.Equal(decimal.NewFromInt(1501)) {
		t.Fatalf("expected 1501, got %s", got)
	}
}
