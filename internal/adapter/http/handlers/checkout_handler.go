package handlers

import (
	"errors"
	"io"
	"net/http"

	request "policy_checkout/internal/adapter/http/dto/request"
	response "policy_checkout/internal/adapter/http/dto/response"
	"policy_checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxWebhookBody = 1 << 20

// CheckoutHandler starts payments and receives provider callbacks.
type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
	log     *logrus.Entry
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc, log: logrus.WithField("component", "http.checkout")}
}

// Checkout godoc
// @Summary  Screen and charge a quote
// @Tags     checkout
// @Accept   json
// @Produce  json
// @Param    id       path      string                   true   "Policy number"
// @Param    payload  body      request.CheckoutRequest  false  "Payment token for token gateways"
// @Success  200      {object}  response.CheckoutResponse
// @Failure  403      {object}  pkg.HTTPError
// @Failure  409      {object}  pkg.HTTPError
// @Failure  502      {object}  pkg.HTTPError
// @Router   /quotes/{id}/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var payload request.CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
			writeBindError(c, h.log, "checkout", err)
			return
		}
	}

	id := c.Param("id")
	h.log.WithField("quote_id", id).Info("[checkout][handler] checkout start")
	res, err := h.usecase.Checkout(c.Request.Context(), usecase.CheckoutCommand{
		QuoteID:      id,
		PaymentToken: payload.PaymentToken,
		ClientIP:     c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	if err != nil {
		writeError(c, h.log, "checkout", err)
		return
	}
	h.log.WithFields(logrus.Fields{"quote_id": id, "status": res.Status}).Info("[checkout][handler] checkout success")
	c.JSON(http.StatusOK, response.FromCheckoutResult(res))
}

// Webhook receives the active gateway's callback. Outcomes the service cannot
// act on are acknowledged so the provider stops retrying; failures on our side
// answer 5xx so it retries.
// @Summary  Payment provider webhook
// @Tags     checkout
// @Accept   json
// @Produce  json
// @Success  200  {object}  response.WebhookResponse
// @Failure  400  {object}  pkg.HTTPError
// @Router   /webhooks/payments [post]
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		writeBindError(c, h.log, "webhook", err)
		return
	}

	q, err := h.usecase.HandleWebhook(c.Request.Context(), payload, c.Request.Header)
	if err != nil {
		if usecase.KindOf(err) == usecase.KindConflict {
			h.log.WithError(err).WithField("quote_id", q.ID).Warn("[payment][handler] webhook acknowledged without effect")
			c.JSON(http.StatusOK, response.WebhookResponse{Received: true, Status: string(q.Status)})
			return
		}
		writeError(c, h.log, "webhook", err)
		return
	}
	c.JSON(http.StatusOK, response.WebhookResponse{Received: true, Status: string(q.Status)})
}
