package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"policy_checkout/internal/usecase"
)

func TestMapCheckoutError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &usecase.Error{Kind: usecase.KindValidation, Code: "invalid_email", Message: "email is not valid"}, http.StatusBadRequest, "INVALID_EMAIL"},
		{"not found", usecase.ErrQuoteNotFound, http.StatusNotFound, "QUOTE_NOT_FOUND"},
		{"wrapped conflict", fmt.Errorf("checkout: %w", usecase.ErrCheckoutInProgress), http.StatusConflict, "CHECKOUT_IN_PROGRESS"},
		{"coupon policy", &usecase.Error{Kind: usecase.KindPolicyViolation, Code: "min_spend", Message: "minimum spend not met"}, http.StatusUnprocessableEntity, "MIN_SPEND"},
		{"blocked wrapped", fmt.Errorf("screen: %w", usecase.ErrTransactionBlocked), http.StatusForbidden, "TRANSACTION_BLOCKED"},
		{"provider", &usecase.Error{Kind: usecase.KindProvider, Code: "payment_failed", Message: "Payment could not be processed"}, http.StatusBadGateway, "PAYMENT_FAILED"},
		{"plain error", errors.New("nil pointer"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapCheckoutError(tc.err)
			if got.HTTPStatus != tc.status || got.Code != tc.code {
				t.Fatalf("expected %d %s, got %d %s", tc.status, tc.code, got.HTTPStatus, got.Code)
			}
		})
	}

	t.Run("internal cause stays out of the body", func(t *testing.T) {
		got := mapCheckoutError(&usecase.Error{Kind: usecase.KindInternal, Code: "internal", Message: "save quote", Err: errors.New("ddb: ProvisionedThroughputExceeded")})
		body := got.ToHTTPError()
		if body.Message != "An internal error occurred" {
			t.Fatalf("internal detail leaked: %+v", body)
		}
	})
}
