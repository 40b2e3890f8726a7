package routes

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	_ "policy_checkout/docs"
	"policy_checkout/internal/adapter/http/handlers"
	appconfig "policy_checkout/internal/config"
	"policy_checkout/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Quote    *handlers.QuoteHandler
	Checkout *handlers.CheckoutHandler
	Admin    *handlers.AdminHandler
}

// NewRouter registers every route. An empty adminToken leaves the admin group open.
func NewRouter(h Handlers, adminToken string) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, h.Quote, h.Checkout)
	addAdminRoutes(v1.Group("/admin", adminAuth(adminToken)), h.Admin)
	return router
}

// NewServer wraps the router with the configured timeouts.
func NewServer(cfg appconfig.ServerConfig, router http.Handler) *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// Serve runs srv until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, srv *http.Server, cfg appconfig.ServerConfig) error {
	log := logrus.WithField("component", "http")
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("[http] listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to startup the application: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	log.Info("[http] shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logrus.WithField("panic", recovered).Error("[http] recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
