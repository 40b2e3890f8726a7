package handlers

import (
	"errors"
	"net/http"
	"testing"

	"policy_checkout/internal/adapter/http/handlers/mocks"
	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestCheckoutHandler_Checkout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"blocked", usecase.ErrTransactionBlocked, http.StatusForbidden, "TRANSACTION_BLOCKED", "transaction blocked"},
		{"coupon gone", usecase.ErrCouponNoLongerAvailable, http.StatusConflict, "COUPON_UNAVAILABLE", "coupon no longer available"},
		{"expired", usecase.ErrQuoteExpired, http.StatusConflict, "QUOTE_EXPIRED", "quote has expired"},
		{"declined", &usecase.Error{Kind: usecase.KindProvider, Code: "payment_failed", Message: "Your card was declined."}, http.StatusBadGateway, "PAYMENT_FAILED", "Your card was declined."},
		{"internal", &usecase.Error{Kind: usecase.KindInternal, Code: "internal", Message: "internal error", Err: errors.New("dynamodb: throttled")}, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred"},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockICheckoutUseCase(ctrl)
			h := NewCheckoutHandler(uc)

			r := gin.New()
			r.POST("/v1/quotes/:id/checkout", h.Checkout)

			uc.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(usecase.CheckoutResult{}, tc.err)

			w := doJSON(r, http.MethodPost, "/v1/quotes/POL-1/checkout", `{"payment_token":"tok"}`)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			body := decodeBody(t, w)
			if body["code"] != tc.code || body["message"] != tc.message {
				t.Fatalf("unexpected body: %s", w.Body.String())
			}
		})
	}

	t.Run("success passes client context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/checkout", h.Checkout)

		uc.EXPECT().Checkout(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, cmd usecase.CheckoutCommand) (usecase.CheckoutResult, error) {
			if cmd.QuoteID != "POL-1" || cmd.PaymentToken != "tok" || cmd.ClientIP == "" {
				t.Fatalf("unexpected command: %+v", cmd)
			}
			q := entities.Quote{ID: "POL-1", Status: entities.QuoteStatusAwaitingPayment}
			return usecase.CheckoutResult{Quote: q, Status: q.Status, RedirectURL: "https://checkout.example/s/1"}, nil
		})

		w := doJSON(r, http.MethodPost, "/v1/quotes/POL-1/checkout", `{"payment_token":"tok"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["status"] != "awaiting_payment" || body["redirect_url"] != "https://checkout.example/s/1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("empty body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/checkout", h.Checkout)

		uc.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(usecase.CheckoutResult{Status: entities.QuoteStatusAwaitingPayment}, nil)

		w := doJSON(r, http.MethodPost, "/v1/quotes/POL-1/checkout", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestCheckoutHandler_Webhook(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		quote  entities.Quote
		err    error
		status int
	}{
		{"confirmed", entities.Quote{ID: "POL-1", Status: entities.QuoteStatusCompleted}, nil, http.StatusOK},
		{"bad signature", entities.Quote{}, &usecase.Error{Kind: usecase.KindValidation, Code: "invalid_webhook", Message: "webhook could not be verified"}, http.StatusBadRequest},
		{"late payment acknowledged", entities.Quote{ID: "POL-1", Status: entities.QuoteStatusExpired}, usecase.ErrQuoteExpired, http.StatusOK},
		{"storage failure retried", entities.Quote{}, &usecase.Error{Kind: usecase.KindInternal, Code: "internal", Message: "internal error"}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockICheckoutUseCase(ctrl)
			h := NewCheckoutHandler(uc)

			r := gin.New()
			r.POST("/v1/webhooks/payments", h.Webhook)

			uc.EXPECT().HandleWebhook(gomock.Any(), []byte(`{"id":"evt_1"}`), gomock.Any()).Return(tc.quote, tc.err)

			w := doJSON(r, http.MethodPost, "/v1/webhooks/payments", `{"id":"evt_1"}`)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}
