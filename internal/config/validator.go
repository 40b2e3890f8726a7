package config

import (
	"errors"
	"fmt"
	"strings"

	"policy_checkout/internal/domain/fraud"
	"policy_checkout/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

// Validate checks the loaded configuration for values the service cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}

	switch c.Storage.Driver {
	case StorageDynamoDB, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}

	switch c.Payment.Gateway {
	case GatewayStripeCheckout, GatewayStripeIntent, GatewayMercadoPago, GatewayMock:
	default:
		errs = append(errs, fmt.Errorf("unknown payment.gateway %q", c.Payment.Gateway))
	}
	if len(strings.TrimSpace(c.Payment.Currency)) != 3 {
		errs = append(errs, fmt.Errorf("payment.currency must be an ISO 4217 code, got %q", c.Payment.Currency))
	}

	f := c.Fraud
	if f.WarnThreshold < 0 || f.BlockThreshold > 100 || f.WarnThreshold > f.BlockThreshold {
		errs = append(errs, fmt.Errorf("fraud thresholds must satisfy 0 <= warn (%v) <= block (%v) <= 100", f.WarnThreshold, f.BlockThreshold))
	}
	if !f.FailOpen && strings.TrimSpace(f.Endpoint) == "" {
		errs = append(errs, errors.New("fraud.fail_open=false requires fraud.endpoint"))
	}

	if c.Quote.ExpiryWindow <= 0 {
		errs = append(errs, errors.New("quote.expiry_window must be positive"))
	}
	if c.Quote.SweepInterval <= 0 {
		errs = append(errs, errors.New("quote.sweep_interval must be positive"))
	}

	if _, err := c.Pricing.RateTable(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Decision returns the fraud decision policy.
func (f FraudConfig) Decision() fraud.Config {
	return fraud.Config{
		BlockThreshold: f.BlockThreshold,
		WarnThreshold:  f.WarnThreshold,
		FailOpen:       f.FailOpen,
	}
}

// RateTable parses the pricing section. Empty values fall back to the defaults.
func (p PricingConfig) RateTable() (pricing.RateTable, error) {
	rates := pricing.DefaultRateTable()
	var errs []error

	parse := func(name, raw string, dst *decimal.Decimal) {
		if strings.TrimSpace(raw) == "" {
			return
		}
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("pricing.%s: %w", name, err))
			return
		}
		if d.IsNegative() {
			errs = append(errs, fmt.Errorf("pricing.%s must not be negative", name))
			return
		}
		*dst = d
	}

	parse("hourly_base", p.HourlyBase, &rates.Hourly.Base)
	parse("hourly_increment", p.HourlyIncrement, &rates.Hourly.Increment)
	parse("daily_base", p.DailyBase, &rates.Daily.Base)
	parse("daily_increment", p.DailyIncrement, &rates.Daily.Increment)
	parse("weekly_base", p.WeeklyBase, &rates.Weekly.Base)
	parse("weekly_increment", p.WeeklyIncrement, &rates.Weekly.Increment)
	parse("four_week_rate", p.FourWeekRate, &rates.FourWeekRate)
	parse("minimum_premium", p.MinimumPremium, &rates.MinimumPremium)

	if !rates.MinimumPremium.IsPositive() {
		errs = append(errs, errors.New("pricing.minimum_premium must be positive"))
	}

	if len(p.AgeBands) > 0 {
		bands := make([]pricing.AgeBand, 0, len(p.AgeBands))
		for i, b := range p.AgeBands {
			if b.Max < b.Min {
				errs = append(errs, fmt.Errorf("pricing.age_bands[%d]: max < min", i))
				continue
			}
			band := pricing.AgeBand{Min: b.Min, Max: b.Max}
			parse(fmt.Sprintf("age_bands[%d].multiplier", i), b.Multiplier, &band.Multiplier)
			bands = append(bands, band)
		}
		rates.AgeBands = bands
	}

	if len(p.LicenseDiscounts) > 0 {
		discounts := make(map[string]decimal.Decimal, len(p.LicenseDiscounts))
		for bracket, raw := range p.LicenseDiscounts {
			pct := decimal.Zero
			parse("license_discounts."+bracket, raw, &pct)
			if pct.GreaterThan(decimal.NewFromInt(100)) {
				errs = append(errs, fmt.Errorf("pricing.license_discounts.%s above 100%%", bracket))
			}
			discounts[bracket] = pct
		}
		rates.LicenseDiscounts = discounts
	}

	if len(errs) > 0 {
		return pricing.RateTable{}, errors.Join(errs...)
	}
	return rates, nil
}
