package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Quote.ExpiryWindow != 10*time.Minute {
		t.Fatalf("expected 10m expiry window, got %s", cfg.Quote.ExpiryWindow)
	}
	if cfg.Fraud.BlockThreshold != 80 || cfg.Fraud.WarnThreshold != 60 || !cfg.Fraud.FailOpen {
		t.Fatalf("unexpected fraud defaults: %+v", cfg.Fraud)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte(`
payment:
  gateway: mercadopago
  currency: BRL
fraud:
  block_threshold: 90
pricing:
  minimum_premium: "12.00"
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FRAUD_WARN_THRESHOLD", "70")
	t.Setenv("QUOTE_EXPIRY_WINDOW", "15m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Payment.Gateway != GatewayMercadoPago || cfg.Payment.Currency != "BRL" {
		t.Fatalf("file values not applied: %+v", cfg.Payment)
	}
	if cfg.Fraud.BlockThreshold != 90 || cfg.Fraud.WarnThreshold != 70 {
		t.Fatalf("unexpected thresholds: %+v", cfg.Fraud)
	}
	if cfg.Quote.ExpiryWindow != 15*time.Minute {
		t.Fatalf("env override not applied: %s", cfg.Quote.ExpiryWindow)
	}
	rates, err := cfg.Pricing.RateTable()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rates.MinimumPremium.Equal(decimal.RequireFromString("12")) {
		t.Fatalf("expected minimum 12, got %s", rates.MinimumPremium)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"warn above block", func(c *Config) { c.Fraud.WarnThreshold = 90 }},
		{"block above 100", func(c *Config) { c.Fraud.BlockThreshold = 101 }},
		{"fail closed without endpoint", func(c *Config) { c.Fraud.FailOpen = false }},
		{"unknown gateway", func(c *Config) { c.Payment.Gateway = "paypal" }},
		{"unknown storage", func(c *Config) { c.Storage.Driver = "postgres" }},
		{"zero expiry", func(c *Config) { c.Quote.ExpiryWindow = 0 }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad decimal", func(c *Config) { c.Pricing.DailyBase = "forty" }},
		{"zero minimum", func(c *Config) { c.Pricing.MinimumPremium = "0" }},
		{"negative discount", func(c *Config) { c.Pricing.LicenseDiscounts = map[string]string{"5+": "-1"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestQuoteConfig_IsManualMethod(t *testing.T) {
	q := DefaultConfig().Quote
	if !q.IsManualMethod("manual") || q.IsManualMethod("card") {
		t.Fatalf("unexpected manual method detection: %v", q.ManualMethods)
	}
}
