package handlers

import (
	"net/http"

	request "policy_checkout/internal/adapter/http/dto/request"
	response "policy_checkout/internal/adapter/http/dto/response"
	"policy_checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// QuoteHandler serves the customer-facing quote routes.
type QuoteHandler struct {
	quotes usecase.IQuoteUseCase
	expiry usecase.IExpiryUseCase
	log    *logrus.Entry
}

func NewQuoteHandler(quotes usecase.IQuoteUseCase, expiry usecase.IExpiryUseCase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, expiry: expiry, log: logrus.WithField("component", "http.quote")}
}

// CreateQuote godoc
// @Summary  Price a new quote
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    payload  body      request.CreateQuoteRequest  true  "Quote request"
// @Success  201      {object}  response.QuoteResponse
// @Failure  400      {object}  pkg.HTTPError
// @Failure  422      {object}  pkg.HTTPError
// @Router   /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, h.log, "create_quote", err)
		return
	}

	q, err := h.quotes.CreateQuote(c.Request.Context(), payload.ToCommand())
	if err != nil {
		writeError(c, h.log, "create_quote", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q))
}

// GetQuote godoc
// @Summary  Fetch a quote
// @Tags     quotes
// @Produce  json
// @Param    id   path      string  true  "Policy number"
// @Success  200  {object}  response.QuoteResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.quotes.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, "get_quote", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// ExpireQuote expires a quote whose payment window has closed. A quote still
// inside its window is left alone and the call answers 409.
// @Summary  Expire an overdue quote
// @Tags     quotes
// @Produce  json
// @Param    id   path      string  true  "Policy number"
// @Success  200  {object}  response.QuoteResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /quotes/{id}/expire [post]
func (h *QuoteHandler) ExpireQuote(c *gin.Context) {
	q, err := h.expiry.ExpireIfPending(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, "expire_quote", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// PreviewCoupon godoc
// @Summary  Validate a coupon against a total
// @Tags     coupons
// @Accept   json
// @Produce  json
// @Param    payload  body      request.PreviewCouponRequest  true  "Coupon preview"
// @Success  200      {object}  response.CouponPreviewResponse
// @Failure  422      {object}  pkg.HTTPError
// @Router   /coupons/preview [post]
func (h *QuoteHandler) PreviewCoupon(c *gin.Context) {
	var payload request.PreviewCouponRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, h.log, "preview_coupon", err)
		return
	}

	preview, err := h.quotes.PreviewCoupon(c.Request.Context(), payload.ToCommand())
	if err != nil {
		writeError(c, h.log, "preview_coupon", err)
		return
	}
	c.JSON(http.StatusOK, response.FromCouponPreview(preview))
}
