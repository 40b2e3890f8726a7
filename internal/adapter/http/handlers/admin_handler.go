package handlers

import (
	"context"
	"net/http"

	request "policy_checkout/internal/adapter/http/dto/request"
	response "policy_checkout/internal/adapter/http/dto/response"
	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler serves the back-office review and coupon routes.
type AdminHandler struct {
	review  usecase.IAdminReviewUseCase
	coupons usecase.ICouponUseCase
	log     *logrus.Entry
}

func NewAdminHandler(review usecase.IAdminReviewUseCase, coupons usecase.ICouponUseCase) *AdminHandler {
	return &AdminHandler{review: review, coupons: coupons, log: logrus.WithField("component", "http.admin")}
}

// ListPolicies godoc
// @Summary  Search quotes and policies
// @Tags     admin
// @Produce  json
// @Param    status  query     string  false  "Status filter"
// @Param    search  query     string  false  "Policy number, name, email or registration"
// @Param    sort    query     string  false  "latest|oldest|expiring_soon|amount_high|amount_low|alphabetical"
// @Param    limit   query     int     false  "Page size"
// @Param    offset  query     int     false  "Offset"
// @Success  200     {object}  response.QuotePageResponse
// @Router   /admin/policies [get]
func (h *AdminHandler) ListPolicies(c *gin.Context) {
	var query request.ListQuotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindError(c, h.log, "list_policies", err)
		return
	}
	filter := query.ToFilter()
	page, err := h.review.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.log, "list_policies", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotePage(page, filter.Limit, filter.Offset))
}

// Approve clears a blocked quote for payment.
// @Summary  Approve a flagged quote
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    id       path      string                 true  "Policy number"
// @Param    payload  body      request.ReviewRequest  true  "Reviewer"
// @Success  200      {object}  response.AdminQuoteResponse
// @Router   /admin/policies/{id}/approve [post]
func (h *AdminHandler) Approve(c *gin.Context) {
	h.applyReview(c, "approve", h.review.ApproveDespiteFlag)
}

// Reject godoc
// @Summary  Reject a flagged quote
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    id       path      string                 true  "Policy number"
// @Param    payload  body      request.ReviewRequest  true  "Reviewer"
// @Success  200      {object}  response.AdminQuoteResponse
// @Router   /admin/policies/{id}/reject [post]
func (h *AdminHandler) Reject(c *gin.Context) {
	h.applyReview(c, "reject", h.review.RejectFlagged)
}

// Rescreen godoc
// @Summary  Re-run fraud screening
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    id       path      string                 true  "Policy number"
// @Param    payload  body      request.ReviewRequest  true  "Reviewer"
// @Success  200      {object}  response.AdminQuoteResponse
// @Router   /admin/policies/{id}/rescreen [post]
func (h *AdminHandler) Rescreen(c *gin.Context) {
	h.applyReview(c, "rescreen", func(ctx context.Context, id, actor, _ string) (entities.Quote, error) {
		return h.review.RetryScreen(ctx, id, actor)
	})
}

// RetryIssuance godoc
// @Summary  Retry policy issuance
// @Tags     admin
// @Produce  json
// @Param    id   path      string  true  "Policy number"
// @Success  200  {object}  response.AdminQuoteResponse
// @Router   /admin/policies/{id}/issuance [post]
func (h *AdminHandler) RetryIssuance(c *gin.Context) {
	q, err := h.review.RetryIssuance(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, "retry_issuance", err)
		return
	}
	c.JSON(http.StatusOK, response.FromAdminQuote(q))
}

// ManualPayment godoc
// @Summary  Record an offline payment
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    id       path      string                        true  "Policy number"
// @Param    payload  body      request.ManualPaymentRequest  true  "Payment reference"
// @Success  200      {object}  response.AdminQuoteResponse
// @Router   /admin/policies/{id}/manual-payment [post]
func (h *AdminHandler) ManualPayment(c *gin.Context) {
	var payload request.ManualPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, h.log, "manual_payment", err)
		return
	}
	q, err := h.review.MarkPaidManually(c.Request.Context(), c.Param("id"), payload.Actor, payload.Reference)
	if err != nil {
		writeError(c, h.log, "manual_payment", err)
		return
	}
	c.JSON(http.StatusOK, response.FromAdminQuote(q))
}

// DeletePolicy godoc
// @Summary  Delete an expired quote
// @Tags     admin
// @Param    id  path  string  true  "Policy number"
// @Success  204
// @Failure  409  {object}  pkg.HTTPError
// @Router   /admin/policies/{id} [delete]
func (h *AdminHandler) DeletePolicy(c *gin.Context) {
	if err := h.review.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, "delete_policy", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateCoupon godoc
// @Summary  Create a coupon
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    payload  body      request.CreateCouponRequest  true  "Coupon"
// @Success  201      {object}  response.CouponResponse
// @Router   /admin/coupons [post]
func (h *AdminHandler) CreateCoupon(c *gin.Context) {
	var payload request.CreateCouponRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, h.log, "create_coupon", err)
		return
	}
	created, err := h.coupons.Create(c.Request.Context(), payload.ToEntity())
	if err != nil {
		writeError(c, h.log, "create_coupon", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromCoupon(created))
}

// ListCoupons godoc
// @Summary  List coupons
// @Tags     admin
// @Produce  json
// @Success  200  {array}  response.CouponResponse
// @Router   /admin/coupons [get]
func (h *AdminHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.coupons.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, "list_coupons", err)
		return
	}
	c.JSON(http.StatusOK, response.FromCoupons(coupons))
}

func (h *AdminHandler) applyReview(
	c *gin.Context,
	op string,
	action func(ctx context.Context, id, actor, note string) (entities.Quote, error),
) {
	var payload request.ReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, h.log, op, err)
		return
	}
	q, err := action(c.Request.Context(), c.Param("id"), payload.Actor, payload.Note)
	if err != nil {
		writeError(c, h.log, op, err)
		return
	}
	h.log.WithFields(logrus.Fields{"op": op, "quote_id": q.ID, "actor": payload.Actor, "status": q.Status}).Info("[review][handler] action applied")
	c.JSON(http.StatusOK, response.FromAdminQuote(q))
}
