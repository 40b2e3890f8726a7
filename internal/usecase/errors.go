package usecase

import (
	"errors"
	"fmt"

	"policy_checkout/internal/domain/coupon"
	"policy_checkout/internal/domain/entities"
)

// ErrorKind classifies a failure for the transport layer.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindProvider        ErrorKind = "provider"
	KindPolicyViolation ErrorKind = "policy_violation"
	KindConflict        ErrorKind = "conflict"
	KindInternal        ErrorKind = "internal"
)

// Error is the typed failure returned by the use cases. Message is always safe
// to show to the caller; Err keeps the internal cause for logs.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors of the same kind and code, so wrapped copies of a sentinel
// still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Code == e.Code
}

func (e *Error) withCause(err error) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: e.Message, Err: err}
}

var (
	ErrInvalidQuoteID          = &Error{Kind: KindValidation, Code: "invalid_quote_id", Message: "quote id is required"}
	ErrQuoteNotFound           = &Error{Kind: KindNotFound, Code: "quote_not_found", Message: "quote not found"}
	ErrQuoteExpired            = &Error{Kind: KindConflict, Code: "quote_expired", Message: "quote has expired"}
	ErrQuoteAlreadyPaid        = &Error{Kind: KindConflict, Code: "quote_already_paid", Message: "quote has already been paid"}
	ErrQuoteNotPayable         = &Error{Kind: KindConflict, Code: "quote_not_payable", Message: "quote cannot be checked out in its current state"}
	ErrCheckoutInProgress      = &Error{Kind: KindConflict, Code: "checkout_in_progress", Message: "a checkout for this quote is already in progress"}
	ErrTransactionBlocked      = &Error{Kind: KindPolicyViolation, Code: "transaction_blocked", Message: "transaction blocked"}
	ErrCouponNoLongerAvailable = &Error{Kind: KindConflict, Code: "coupon_unavailable", Message: "coupon no longer available"}
	ErrCouponExists            = &Error{Kind: KindConflict, Code: "coupon_exists", Message: "coupon code already exists"}
	ErrFraudNotCleared         = &Error{Kind: KindConflict, Code: "fraud_not_cleared", Message: "quote has not cleared fraud screening"}
	ErrPaymentMismatch         = &Error{Kind: KindConflict, Code: "payment_mismatch", Message: "payment confirmation does not match the quote"}
	ErrQuoteNotBlocked         = &Error{Kind: KindConflict, Code: "quote_not_blocked", Message: "quote is not awaiting fraud review"}
	ErrQuoteNotScreenable      = &Error{Kind: KindConflict, Code: "quote_not_screenable", Message: "quote cannot be screened in its current state"}
	ErrIssuanceNotPending      = &Error{Kind: KindConflict, Code: "issuance_not_pending", Message: "quote is not waiting for issuance"}
	ErrManualPaymentNotAllowed = &Error{Kind: KindConflict, Code: "manual_payment_not_allowed", Message: "quote does not use a manual payment method"}
	ErrQuoteNotExpirable       = &Error{Kind: KindConflict, Code: "quote_not_expirable", Message: "quote cannot be expired yet"}
	ErrQuoteNotDeletable       = &Error{Kind: KindConflict, Code: "quote_not_deletable", Message: "only expired quotes can be deleted"}
)

func validationError(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func internalError(op string, err error) *Error {
	return &Error{Kind: KindInternal, Code: "internal", Message: "internal error", Err: fmt.Errorf("%s: %w", op, err)}
}

func couponError(err error) *Error {
	var rej *coupon.Rejection
	if errors.As(err, &rej) {
		return &Error{Kind: KindPolicyViolation, Code: "coupon_" + string(rej.Reason), Message: rej.Message(), Err: err}
	}
	return internalError("coupon lookup", err)
}

func gatewayError(err error) *Error {
	if errors.Is(err, entities.ErrChargeInFlight) {
		return ErrCheckoutInProgress.withCause(err)
	}
	var ge *entities.GatewayError
	if errors.As(err, &ge) {
		return &Error{Kind: KindProvider, Code: "payment_failed", Message: ge.CustomerMessage(), Err: err}
	}
	return &Error{Kind: KindProvider, Code: "payment_failed", Message: (&entities.GatewayError{}).CustomerMessage(), Err: err}
}

// KindOf returns the kind of err, treating anything untyped as internal.
func KindOf(err error) ErrorKind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return KindInternal
}
