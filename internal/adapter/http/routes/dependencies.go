package routes

import (
	"context"
	"fmt"

	"policy_checkout/internal/adapter/http/handlers"
	"policy_checkout/internal/adapter/persistence/memory"
	"policy_checkout/internal/adapter/persistence/repository"
	appconfig "policy_checkout/internal/config"
	"policy_checkout/internal/infrastructure/cache"
	"policy_checkout/internal/infrastructure/database"
	"policy_checkout/internal/infrastructure/issuance"
	"policy_checkout/internal/infrastructure/payments"
	"policy_checkout/internal/infrastructure/risk"
	"policy_checkout/internal/usecase"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// App is the wired service: the HTTP router plus what the background jobs need.
type App struct {
	Router  *gin.Engine
	Expiry  usecase.IExpiryUseCase
	closers []func()
}

// Close releases the Redis and NATS connections, newest first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Build connects the configured backends and wires the use cases.
func Build(ctx context.Context, cfg *appconfig.Config) (*App, error) {
	app := &App{}
	log := logrus.WithField("component", "wiring")

	settings, err := settingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	quotes, coupons, err := buildRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var store interfaces.IIdempotencyStore = cache.NewMemoryIdempotencyStore()
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = rdb.Close() })
		store = cache.NewRedisIdempotencyStore(rdb, cfg.Redis.TTL)
	} else {
		log.Warn("[wiring] redis not configured, idempotency keys kept in process")
	}

	var issuer interfaces.IPolicyIssuer = issuance.NewLogIssuer()
	if cfg.NATS.URL != "" {
		nc, err := issuance.Connect(cfg.NATS)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = nc.Drain() })
		issuer = issuance.NewNATSIssuer(nc, cfg.NATS.Subject)
	} else {
		log.Warn("[wiring] nats not configured, issuance documents are only logged")
	}

	gateway, err := payments.NewGateway(cfg, store)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("payment gateway: %w", err)
	}
	riskClient := risk.NewClient(cfg.Fraud)

	quoteUseCase := usecase.NewQuoteUseCase(quotes, coupons, settings)
	checkoutUseCase := usecase.NewCheckoutUseCase(quotes, coupons, gateway, riskClient, issuer, settings)
	reviewUseCase := usecase.NewAdminReviewUseCase(quotes, coupons, riskClient, issuer, settings)
	expiryUseCase := usecase.NewExpiryUseCase(quotes, coupons, settings)
	couponUseCase := usecase.NewCouponUseCase(coupons)

	app.Expiry = expiryUseCase
	app.Router = NewRouter(Handlers{
		Quote:    handlers.NewQuoteHandler(quoteUseCase, expiryUseCase),
		Checkout: handlers.NewCheckoutHandler(checkoutUseCase),
		Admin:    handlers.NewAdminHandler(reviewUseCase, couponUseCase),
	}, cfg.Server.AdminToken)

	log.WithFields(logrus.Fields{
		"storage": cfg.Storage.Driver,
		"gateway": gateway.Name(),
	}).Info("[wiring] service ready")
	return app, nil
}

func buildRepositories(ctx context.Context, cfg *appconfig.Config) (interfaces.IQuoteRepository, interfaces.ICouponRepository, error) {
	switch cfg.Storage.Driver {
	case appconfig.StorageMemory:
		return memory.NewQuoteRepository(), memory.NewCouponRepository(), nil
	case appconfig.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewQuoteDynamoRepository(ddb, cfg.DynamoDB.QuotesTable),
			repository.NewCouponDynamoRepository(ddb, cfg.DynamoDB.CouponsTable, cfg.DynamoDB.CouponCodeIndex),
			nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func settingsFromConfig(cfg *appconfig.Config) (usecase.Settings, error) {
	rates, err := cfg.Pricing.RateTable()
	if err != nil {
		return usecase.Settings{}, err
	}
	return usecase.Settings{
		Fraud:          cfg.Fraud.Decision(),
		Rates:          rates,
		Currency:       cfg.Payment.Currency,
		ExpiryWindow:   cfg.Quote.ExpiryWindow,
		DefaultStartIn: cfg.Quote.DefaultStartIn,
		PolicyPrefix:   cfg.Quote.PolicyPrefix,
		ManualMethods:  cfg.Quote.ManualMethods,
		SweepBatch:     cfg.Quote.SweepBatch,
	}, nil
}
