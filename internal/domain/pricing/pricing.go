// Package pricing computes premiums. Everything here is pure: the rate table and
// the clock are inputs.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"policy_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const (
	minimumDrivingAge = 17
	ageClampAt        = 80
	hoursPerDay       = 24
	daysPerFourWeeks  = 28
	dobLayout         = "2006-01-02"
)

var (
	ErrInvalidDuration    = errors.New("duration must be at least 1")
	ErrInvalidUnit        = errors.New("unknown duration unit")
	ErrInvalidDateOfBirth = errors.New("invalid date of birth")
)

type Input struct {
	Duration    int
	Unit        entities.DurationUnit
	DateOfBirth string
	LicenseHeld string
}

// Calculate prices a quote:
//  1. base price from the duration rule
//  2. age discount from the matching band
//  3. license discount as a percentage of the price after the age discount
//  4. total floored at the minimum premium
func Calculate(in Input, rates RateTable, now time.Time) (entities.Premium, error) {
	if in.Duration < 1 {
		return entities.Premium{}, ErrInvalidDuration
	}
	dob, err := time.Parse(dobLayout, in.DateOfBirth)
	if err != nil || dob.After(now) {
		return entities.Premium{}, ErrInvalidDateOfBirth
	}

	base, duration, err := BasePrice(in.Duration, in.Unit, rates)
	if err != nil {
		return entities.Premium{}, err
	}

	age := now.Year() - dob.Year()
	ageDiscount := AgeDiscount(age, rates.AgeBands)
	afterAge := decimal.Max(base.Sub(ageDiscount), decimal.Zero)

	licenseDiscount := decimal.Zero
	if pct, ok := rates.LicenseDiscounts[in.LicenseHeld]; ok {
		licenseDiscount = afterAge.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
	}

	total := afterAge.Sub(licenseDiscount)
	if total.LessThan(rates.MinimumPremium) {
		total = rates.MinimumPremium
	}
	total = total.Round(2)

	return entities.Premium{
		BasePrice:       base.Round(2),
		AgeDiscount:     ageDiscount.Round(2),
		LicenseDiscount: licenseDiscount,
		Subtotal:        total,
		CouponDiscount:  decimal.Zero,
		Total:           total,
		Details: entities.PremiumDetails{
			Age:         age,
			Duration:    duration,
			LicenseHeld: in.LicenseHeld,
		},
	}, nil
}

// BasePrice applies the duration rule and returns the normalized duration label.
// Hours at or above a full day are priced as ceil(hours/24) days.
func BasePrice(value int, unit entities.DurationUnit, rates RateTable) (decimal.Decimal, string, error) {
	if value < 1 {
		return decimal.Zero, "", ErrInvalidDuration
	}
	switch unit {
	case entities.DurationUnitHours:
		if value >= hoursPerDay {
			days := (value + hoursPerDay - 1) / hoursPerDay
			return dayPrice(days, rates), plural(days, "day"), nil
		}
		return linear(value, rates.Hourly), plural(value, "hour"), nil
	case entities.DurationUnitDays:
		return dayPrice(value, rates), plural(value, "day"), nil
	case entities.DurationUnitWeeks:
		if value == 4 {
			return rates.FourWeekRate, plural(value, "week"), nil
		}
		return linear(value, rates.Weekly), plural(value, "week"), nil
	default:
		return decimal.Zero, "", fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}
}

// AgeDiscount returns (age-17) x multiplier of the band containing age. Ages above
// the last band use the last band's multiplier evaluated at 80.
func AgeDiscount(age int, bands []AgeBand) decimal.Decimal {
	if len(bands) == 0 {
		return decimal.Zero
	}
	last := bands[len(bands)-1]
	if age > last.Max {
		return yearsAboveMinimum(ageClampAt).Mul(last.Multiplier)
	}
	for _, b := range bands {
		if age >= b.Min && age <= b.Max {
			return yearsAboveMinimum(age).Mul(b.Multiplier)
		}
	}
	return decimal.Zero
}

func yearsAboveMinimum(age int) decimal.Decimal {
	if age <= minimumDrivingAge {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(age - minimumDrivingAge))
}

func dayPrice(days int, rates RateTable) decimal.Decimal {
	if days == daysPerFourWeeks {
		return rates.FourWeekRate
	}
	return linear(days, rates.Daily)
}

func linear(value int, rate UnitRate) decimal.Decimal {
	if value == 1 {
		return rate.Base
	}
	return rate.Base.Add(rate.Increment.Mul(decimal.NewFromInt(int64(value - 1))))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
