package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "policy_checkout/docs"
	"policy_checkout/internal/adapter/http/routes"
	"policy_checkout/internal/adapter/jobs"
	appconfig "policy_checkout/internal/config"
	"policy_checkout/internal/infrastructure/logging"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// @title           Policy Checkout API
// @version         1.0
// @description     Temporary motor insurance quotes, fraud screening, payment and policy issuance.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey AdminToken
// @in header
// @name X-Admin-Token
// @description Static token required on /admin routes when server.admin_token is set.

func main() {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "./config.yaml"
	}
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		logrus.WithError(err).Fatal("[main] invalid configuration")
	}
	logging.Configure(cfg.Log.Level, cfg.Log.Format)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := routes.Build(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("[main] failed to wire the service")
	}
	defer app.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return routes.Serve(gctx, routes.NewServer(cfg.Server, app.Router), cfg.Server)
	})
	g.Go(func() error {
		return jobs.NewExpiryJob(app.Expiry, cfg.Quote.SweepInterval).Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("[main] stopped with error")
		app.Close()
		os.Exit(1)
	}
	logrus.Info("[main] shutdown complete")
}
