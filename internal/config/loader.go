package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from an optional file and the environment.
// Environment keys are the upper-cased config path with "." replaced by "_",
// e.g. FRAUD_BLOCK_THRESHOLD or PAYMENT_GATEWAY.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isMissingFile(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetConfigFile with an explicit path reports a missing file as an *fs.PathError,
// not ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)
	v.SetDefault("server.admin_token", cfg.Server.AdminToken)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)

	v.SetDefault("storage.driver", cfg.Storage.Driver)

	v.SetDefault("dynamodb.region", cfg.DynamoDB.Region)
	v.SetDefault("dynamodb.endpoint", cfg.DynamoDB.Endpoint)
	v.SetDefault("dynamodb.access_key_id", cfg.DynamoDB.AccessKeyID)
	v.SetDefault("dynamodb.secret_access_key", cfg.DynamoDB.SecretAccessKey)
	v.SetDefault("dynamodb.quotes_table", cfg.DynamoDB.QuotesTable)
	v.SetDefault("dynamodb.coupons_table", cfg.DynamoDB.CouponsTable)
	v.SetDefault("dynamodb.coupon_code_index", cfg.DynamoDB.CouponCodeIndex)

	v.SetDefault("redis.addr", cfg.Redis.Addr)
	v.SetDefault("redis.password", cfg.Redis.Password)
	v.SetDefault("redis.db", cfg.Redis.DB)
	v.SetDefault("redis.ttl", cfg.Redis.TTL)

	v.SetDefault("nats.url", cfg.NATS.URL)
	v.SetDefault("nats.subject", cfg.NATS.Subject)

	v.SetDefault("payment.gateway", cfg.Payment.Gateway)
	v.SetDefault("payment.currency", cfg.Payment.Currency)
	v.SetDefault("payment.success_url", cfg.Payment.SuccessURL)
	v.SetDefault("payment.cancel_url", cfg.Payment.CancelURL)
	v.SetDefault("payment.mock", cfg.Payment.Mock)

	v.SetDefault("stripe.secret_key", cfg.Stripe.SecretKey)
	v.SetDefault("stripe.webhook_secret", cfg.Stripe.WebhookSecret)
	v.SetDefault("mercadopago.access_token", cfg.MercadoPago.AccessToken)
	v.SetDefault("mercadopago.webhook_secret", cfg.MercadoPago.WebhookSecret)

	v.SetDefault("fraud.endpoint", cfg.Fraud.Endpoint)
	v.SetDefault("fraud.feedback_endpoint", cfg.Fraud.FeedbackEndpoint)
	v.SetDefault("fraud.api_key", cfg.Fraud.APIKey)
	v.SetDefault("fraud.block_threshold", cfg.Fraud.BlockThreshold)
	v.SetDefault("fraud.warn_threshold", cfg.Fraud.WarnThreshold)
	v.SetDefault("fraud.fail_open", cfg.Fraud.FailOpen)
	v.SetDefault("fraud.timeout", cfg.Fraud.Timeout)
	v.SetDefault("fraud.breaker_failures", cfg.Fraud.BreakerFailures)
	v.SetDefault("fraud.breaker_open_for", cfg.Fraud.BreakerOpenFor)

	v.SetDefault("quote.expiry_window", cfg.Quote.ExpiryWindow)
	v.SetDefault("quote.sweep_interval", cfg.Quote.SweepInterval)
	v.SetDefault("quote.sweep_batch", cfg.Quote.SweepBatch)
	v.SetDefault("quote.manual_methods", cfg.Quote.ManualMethods)
	v.SetDefault("quote.policy_prefix", cfg.Quote.PolicyPrefix)
	v.SetDefault("quote.default_start_in", cfg.Quote.DefaultStartIn)

	v.SetDefault("pricing.hourly_base", cfg.Pricing.HourlyBase)
	v.SetDefault("pricing.hourly_increment", cfg.Pricing.HourlyIncrement)
	v.SetDefault("pricing.daily_base", cfg.Pricing.DailyBase)
	v.SetDefault("pricing.daily_increment", cfg.Pricing.DailyIncrement)
	v.SetDefault("pricing.weekly_base", cfg.Pricing.WeeklyBase)
	v.SetDefault("pricing.weekly_increment", cfg.Pricing.WeeklyIncrement)
	v.SetDefault("pricing.four_week_rate", cfg.Pricing.FourWeekRate)
	v.SetDefault("pricing.minimum_premium", cfg.Pricing.MinimumPremium)
	v.SetDefault("pricing.license_discounts", cfg.Pricing.LicenseDiscounts)
}
