// Package config holds the typed service configuration. Components receive their
// section at construction time; nothing reads configuration per request.
package config

import (
	"time"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Storage     StorageConfig     `mapstructure:"storage"`
	DynamoDB    DynamoDBConfig    `mapstructure:"dynamodb"`
	Redis       RedisConfig       `mapstructure:"redis"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Payment     PaymentConfig     `mapstructure:"payment"`
	Stripe      StripeConfig      `mapstructure:"stripe"`
	MercadoPago MercadoPagoConfig `mapstructure:"mercadopago"`
	Fraud       FraudConfig       `mapstructure:"fraud"`
	Quote       QuoteConfig       `mapstructure:"quote"`
	Pricing     PricingConfig     `mapstructure:"pricing"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AdminToken      string        `mapstructure:"admin_token"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type DynamoDBConfig struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	QuotesTable     string `mapstructure:"quotes_table"`
	CouponsTable    string `mapstructure:"coupons_table"`
	CouponCodeIndex string `mapstructure:"coupon_code_index"`
}

// RedisConfig is optional. An empty Addr disables the idempotency cache.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// NATSConfig is optional. An empty URL falls back to the log-only issuer.
type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

const (
	GatewayStripeCheckout = "stripe_checkout"
	GatewayStripeIntent   = "stripe_intent"
	GatewayMercadoPago    = "mercadopago"
	GatewayMock           = "mock"
)

type PaymentConfig struct {
	Gateway    string `mapstructure:"gateway"`
	Currency   string `mapstructure:"currency"`
	SuccessURL string `mapstructure:"success_url"`
	CancelURL  string `mapstructure:"cancel_url"`
	Mock       bool   `mapstructure:"mock"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type MercadoPagoConfig struct {
	AccessToken   string `mapstructure:"access_token"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type FraudConfig struct {
	Endpoint         string        `mapstructure:"endpoint"`
	FeedbackEndpoint string        `mapstructure:"feedback_endpoint"`
	APIKey           string        `mapstructure:"api_key"`
	BlockThreshold   float64       `mapstructure:"block_threshold"`
	WarnThreshold    float64       `mapstructure:"warn_threshold"`
	FailOpen         bool          `mapstructure:"fail_open"`
	Timeout          time.Duration `mapstructure:"timeout"`
	BreakerFailures  uint32        `mapstructure:"breaker_failures"`
	BreakerOpenFor   time.Duration `mapstructure:"breaker_open_for"`
}

type QuoteConfig struct {
	ExpiryWindow   time.Duration `mapstructure:"expiry_window"`
	SweepInterval  time.Duration `mapstructure:"sweep_interval"`
	SweepBatch     int           `mapstructure:"sweep_batch"`
	ManualMethods  []string      `mapstructure:"manual_methods"`
	PolicyPrefix   string        `mapstructure:"policy_prefix"`
	DefaultStartIn time.Duration `mapstructure:"default_start_in"`
}

// PricingConfig keeps money as strings so no float rounding creeps in.
type PricingConfig struct {
	HourlyBase       string            `mapstructure:"hourly_base"`
	HourlyIncrement  string            `mapstructure:"hourly_increment"`
	DailyBase        string            `mapstructure:"daily_base"`
	DailyIncrement   string            `mapstructure:"daily_increment"`
	WeeklyBase       string            `mapstructure:"weekly_base"`
	WeeklyIncrement  string            `mapstructure:"weekly_increment"`
	FourWeekRate     string            `mapstructure:"four_week_rate"`
	MinimumPremium   string            `mapstructure:"minimum_premium"`
	AgeBands         []AgeBandConfig   `mapstructure:"age_bands"`
	LicenseDiscounts map[string]string `mapstructure:"license_discounts"`
}

type AgeBandConfig struct {
	Min        int    `mapstructure:"min"`
	Max        int    `mapstructure:"max"`
	Multiplier string `mapstructure:"multiplier"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Driver: StorageDynamoDB,
		},
		DynamoDB: DynamoDBConfig{
			Region:          "us-east-1",
			AccessKeyID:     "local",
			SecretAccessKey: "local",
			QuotesTable:     "quotes",
			CouponsTable:    "coupons",
			CouponCodeIndex: "code_lower-index",
		},
		Redis: RedisConfig{
			TTL: 24 * time.Hour,
		},
		NATS: NATSConfig{
			Subject: "policy.issue",
		},
		Payment: PaymentConfig{
			Gateway:    GatewayStripeIntent,
			Currency:   "GBP",
			SuccessURL: "http://localhost:3000/checkout/success?policy={POLICY}",
			CancelURL:  "http://localhost:3000/checkout/cancel?policy={POLICY}",
		},
		Fraud: FraudConfig{
			BlockThreshold:  80,
			WarnThreshold:   60,
			FailOpen:        true,
			Timeout:         5 * time.Second,
			BreakerFailures: 5,
			BreakerOpenFor:  30 * time.Second,
		},
		Quote: QuoteConfig{
			ExpiryWindow:  10 * time.Minute,
			SweepInterval: time.Minute,
			SweepBatch:    100,
			ManualMethods: []string{"manual"},
			PolicyPrefix:  "POL",
		},
		Pricing: PricingConfig{
			HourlyBase:      "10.00",
			HourlyIncrement: "1.50",
			DailyBase:       "45.00",
			DailyIncrement:  "12.00",
			WeeklyBase:      "95.00",
			WeeklyIncrement: "85.00",
			FourWeekRate:    "360.00",
			MinimumPremium:  "8.50",
			AgeBands: []AgeBandConfig{
				{Min: 17, Max: 25, Multiplier: "0.10"},
				{Min: 26, Max: 40, Multiplier: "0.25"},
				{Min: 41, Max: 60, Multiplier: "0.30"},
				{Min: 61, Max: 80, Multiplier: "0.20"},
			},
			LicenseDiscounts: map[string]string{
				"0-1": "0",
				"1-2": "5",
				"2-5": "10",
				"5+":  "15",
			},
		},
	}
}

// IsManualMethod reports whether a payment method is settled outside the gateway.
func (q QuoteConfig) IsManualMethod(method string) bool {
	for _, m := range q.ManualMethods {
		if m == method {
			return true
		}
	}
	return false
}
