package pricing

import "github.com/shopspring/decimal"

// UnitRate prices the first unit at Base and every following unit at Increment.
type UnitRate struct {
	Base      decimal.Decimal
	Increment decimal.Decimal
}

// AgeBand applies Multiplier per year above the minimum driving age for ages in [Min, Max].
type AgeBand struct {
	Min        int
	Max        int
	Multiplier decimal.Decimal
}

// RateTable is the full pricing configuration. It is passed in, never looked up.
type RateTable struct {
	Hourly           UnitRate
	Daily            UnitRate
	Weekly           UnitRate
	FourWeekRate     decimal.Decimal
	AgeBands         []AgeBand
	LicenseDiscounts map[string]decimal.Decimal
	MinimumPremium   decimal.Decimal
}

// KnownLicense reports whether the bracket has a configured discount entry.
func (r RateTable) KnownLicense(bracket string) bool {
	_, ok := r.LicenseDiscounts[bracket]
	return ok
}

// DefaultRateTable is used when no rate table is configured.
func DefaultRateTable() RateTable {
	return RateTable{
		Hourly:       UnitRate{Base: decimal.RequireFromString("10.00"), Increment: decimal.RequireFromString("1.50")},
		Daily:        UnitRate{Base: decimal.RequireFromString("45.00"), Increment: decimal.RequireFromString("12.00")},
		Weekly:       UnitRate{Base: decimal.RequireFromString("95.00"), Increment: decimal.RequireFromString("85.00")},
		FourWeekRate: decimal.RequireFromString("360.00"),
		AgeBands: []AgeBand{
			{Min: 17, Max: 25, Multiplier: decimal.RequireFromString("0.10")},
			{Min: 26, Max: 40, Multiplier: decimal.RequireFromString("0.25")},
			{Min: 41, Max: 60, Multiplier: decimal.RequireFromString("0.30")},
			{Min: 61, Max: 80, Multiplier: decimal.RequireFromString("0.20")},
		},
		LicenseDiscounts: map[string]decimal.Decimal{
			"0-1": decimal.Zero,
			"1-2": decimal.NewFromInt(5),
			"2-5": decimal.NewFromInt(10),
			"5+":  decimal.NewFromInt(15),
		},
		MinimumPremium: decimal.RequireFromString("8.50"),
	}
}
