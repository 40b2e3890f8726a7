package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"policy_checkout/internal/adapter/http/handlers/mocks"
	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

const validQuoteBody = `{
	"customer": {
		"first_name": "Ada",
		"last_name": "Lovelace",
		"email": "ada@example.com",
		"date_of_birth": "1990-05-10",
		"address": {"line1": "1 High St", "city": "London", "postcode": "N1 1AA"}
	},
	"vehicle": {"registration": "AB12 CDE"},
	"duration": 1,
	"unit": "days",
	"license_held": "5+"
}`

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc, mocks.NewMockIExpiryUseCase(ctrl))

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		w := doJSON(r, http.MethodPost, "/v1/quotes", `{"duration":0}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["code"] != "INVALID_REQUEST" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("coupon rejection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc, mocks.NewMockIExpiryUseCase(ctrl))

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(entities.Quote{}, &usecase.Error{
			Kind:    usecase.KindPolicyViolation,
			Code:    "coupon_expired",
			Message: "Coupon has expired",
		})

		w := doJSON(r, http.MethodPost, "/v1/quotes", validQuoteBody)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["code"] != "COUPON_EXPIRED" || body["message"] != "Coupon has expired" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc, mocks.NewMockIExpiryUseCase(ctrl))

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, cmd usecase.CreateQuoteCommand) (entities.Quote, error) {
			if cmd.Customer.LastName != "Lovelace" || cmd.Unit != entities.DurationUnitDays {
				t.Fatalf("unexpected command: %+v", cmd)
			}
			return entities.Quote{
				ID:      "POL-1",
				Status:  entities.QuoteStatusPending,
				Premium: entities.Premium{Total: decimal.RequireFromString("34.21")},
			}, nil
		})

		w := doJSON(r, http.MethodPost, "/v1/quotes", validQuoteBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		premium, _ := body["premium"].(map[string]any)
		if body["policy_number"] != "POL-1" || premium["total"] != "34.21" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if _, leaked := body["fraud_status"]; leaked {
			t.Fatalf("customer view must not expose screening: %s", w.Body.String())
		}
	})
}

func TestQuoteHandler_GetAndExpire(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc, mocks.NewMockIExpiryUseCase(ctrl))

		r := gin.New()
		r.GET("/v1/quotes/:id", h.GetQuote)

		uc.EXPECT().GetQuote(gomock.Any(), "POL-404").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		w := doJSON(r, http.MethodGet, "/v1/quotes/POL-404", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("expire inside window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		expiry := mocks.NewMockIExpiryUseCase(ctrl)
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl), expiry)

		r := gin.New()
		r.POST("/v1/quotes/:id/expire", h.ExpireQuote)

		expiry.EXPECT().ExpireIfPending(gomock.Any(), "POL-1").Return(entities.Quote{ID: "POL-1"}, usecase.ErrQuoteNotExpirable)

		w := doJSON(r, http.MethodPost, "/v1/quotes/POL-1/expire", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("expire overdue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		expiry := mocks.NewMockIExpiryUseCase(ctrl)
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl), expiry)

		r := gin.New()
		r.POST("/v1/quotes/:id/expire", h.ExpireQuote)

		expiry.EXPECT().ExpireIfPending(gomock.Any(), "POL-1").Return(entities.Quote{ID: "POL-1", Status: entities.QuoteStatusExpired}, nil)

		w := doJSON(r, http.MethodPost, "/v1/quotes/POL-1/expire", "")
		if w.Code != http.StatusOK || decodeBody(t, w)["status"] != "expired" {
			t.Fatalf("expected expired quote, got %d %s", w.Code, w.Body.String())
		}
	})
}

func TestQuoteHandler_PreviewCoupon(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(uc, mocks.NewMockIExpiryUseCase(ctrl))

	r := gin.New()
	r.POST("/v1/coupons/preview", h.PreviewCoupon)

	uc.EXPECT().PreviewCoupon(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, cmd usecase.PreviewCouponCommand) (usecase.CouponPreview, error) {
		if !cmd.Total.Equal(decimal.NewFromInt(50)) {
			t.Fatalf("unexpected total %s", cmd.Total)
		}
		return usecase.CouponPreview{Code: "SAVE10", Discount: decimal.NewFromInt(5), Total: decimal.NewFromInt(45)}, nil
	})

	w := doJSON(r, http.MethodPost, "/v1/coupons/preview", `{"code":"save10","total":"50"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["discount"] != "5.00" || body["total"] != "45.00" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
