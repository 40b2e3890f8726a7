package routes

import (
	"policy_checkout/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addQuoteRoutes(rg *gin.RouterGroup, quotes *handlers.QuoteHandler, checkout *handlers.CheckoutHandler) {
	q := rg.Group("/quotes")
	q.POST("", quotes.CreateQuote)
	q.GET("/:id", quotes.GetQuote)
	q.POST("/:id/checkout", checkout.Checkout)
	q.POST("/:id/expire", quotes.ExpireQuote)

	rg.POST("/coupons/preview", quotes.PreviewCoupon)
	rg.POST("/webhooks/payments", checkout.Webhook)
}

func addAdminRoutes(rg *gin.RouterGroup, admin *handlers.AdminHandler) {
	policies := rg.Group("/policies")
	policies.GET("", admin.ListPolicies)
	policies.POST("/:id/approve", admin.Approve)
	policies.POST("/:id/reject", admin.Reject)
	policies.POST("/:id/rescreen", admin.Rescreen)
	policies.POST("/:id/issuance", admin.RetryIssuance)
	policies.POST("/:id/manual-payment", admin.ManualPayment)
	policies.DELETE("/:id", admin.DeletePolicy)

	coupons := rg.Group("/coupons")
	coupons.POST("", admin.CreateCoupon)
	coupons.GET("", admin.ListCoupons)
}
