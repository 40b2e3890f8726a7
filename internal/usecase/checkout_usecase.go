package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"policy_checkout/internal/domain/coupon"
	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/domain/money"
	"policy_checkout/internal/infrastructure/metrics"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

const recordChargeAttempts = 3

var ErrGatewayNotConfigured = errors.New("payment gateway not configured")

type CheckoutCommand struct {
	QuoteID      string
	PaymentToken string
	ClientIP     string
	UserAgent    string
}

// CheckoutResult tells the client how to continue: nothing for a synchronous
// charge, a client secret for an intent, a URL for a hosted page.
type CheckoutResult struct {
	Quote        entities.Quote
	Handle       string
	ClientSecret string
	RedirectURL  string
	Status       entities.QuoteStatus
}

// ICheckoutUseCase drives a quote from pending to paid.
//
//   - Checkout screens the customer and creates a charge for a new payment attempt
//   - ConfirmPayment applies a provider outcome; repeated confirmations are no-ops
//   - HandleWebhook authenticates a provider callback and confirms it
type ICheckoutUseCase interface {
	Checkout(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error)
	ConfirmPayment(ctx context.Context, conf entities.PaymentConfirmation) (entities.Quote, error)
	HandleWebhook(ctx context.Context, payload []byte, header http.Header) (entities.Quote, error)
}

type CheckoutUseCase struct {
	lc       *lifecycle
	gateway  interfaces.IPaymentGateway
	risk     interfaces.IRiskProvider
	settings Settings
	now      func() time.Time
	log      *logrus.Entry
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(
	quotes interfaces.IQuoteRepository,
	coupons interfaces.ICouponRepository,
	gateway interfaces.IPaymentGateway,
	risk interfaces.IRiskProvider,
	issuer interfaces.IPolicyIssuer,
	settings Settings,
) *CheckoutUseCase {
	log := logrus.WithField("component", "checkout")
	return &CheckoutUseCase{
		lc:       &lifecycle{quotes: quotes, coupons: coupons, issuer: issuer, log: log, failOpen: settings.Fraud.FailOpen},
		gateway:  gateway,
		risk:     risk,
		settings: settings,
		now:      time.Now,
		log:      log,
	}
}

func (u *CheckoutUseCase) Checkout(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	if u.gateway == nil {
		return CheckoutResult{}, internalError("checkout", ErrGatewayNotConfigured)
	}
	q, err := u.lc.load(ctx, cmd.QuoteID)
	if err != nil {
		return CheckoutResult{}, err
	}
	now := u.now().UTC()

	if q.Status.Expirable() && q.IsExpiredAt(now) {
		expired, ok, err := u.lc.expire(ctx, q, now)
		if err != nil {
			return CheckoutResult{}, err
		}
		if ok {
			return CheckoutResult{Quote: expired, Status: expired.Status}, ErrQuoteExpired
		}
		if q, err = u.lc.load(ctx, q.ID); err != nil {
			return CheckoutResult{}, err
		}
	}
	if err := u.checkoutAllowed(q); err != nil {
		return CheckoutResult{Quote: q, Status: q.Status}, err
	}

	prev := q.Status
	attempt := q.PaymentAttempt
	next := attempt + 1
	log := u.log.WithFields(logrus.Fields{"quote_id": q.ID, "attempt": next})
	log.Info("[checkout][usecase] checkout start")

	locked, err := u.lc.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{
			StatusIn:       []entities.QuoteStatus{prev},
			PaymentStatus:  entities.PaymentStatusUnpaid,
			PaymentAttempt: &attempt,
			HandleEmpty:    true,
		},
		interfaces.QuoteUpdate{
			Status:         ptr(entities.QuoteStatusScreening),
			PaymentAttempt: &next,
			ClientIP:       ptr(strings.TrimSpace(cmd.ClientIP)),
			UserAgent:      ptr(cmd.UserAgent),
		},
	)
	if err != nil {
		log.WithError(err).Error("[checkout][usecase] lock update failed")
		return CheckoutResult{}, internalError("start checkout", err)
	}
	if locked.ID == "" {
		return CheckoutResult{}, ErrCheckoutInProgress
	}

	if err := u.recheckCoupon(ctx, locked, now); err != nil {
		u.abort(ctx, locked, prev)
		metrics.CheckoutOutcomes.WithLabelValues("coupon_rejected").Inc()
		return CheckoutResult{}, err
	}

	// A quote already cleared by a reviewer goes straight to payment.
	screened := locked
	if prev != entities.QuoteStatusAwaitingPayment {
		var a entities.FraudAssessment
		screened, a, err = u.lc.screen(ctx, u.risk, u.settings.Fraud, locked, nil, now)
		if err != nil {
			u.abort(ctx, locked, prev)
			return CheckoutResult{}, err
		}
		if a.Halts() {
			metrics.CheckoutOutcomes.WithLabelValues("blocked").Inc()
			log.WithField("action", a.Action).Warn("[checkout][usecase] transaction blocked by screening")
			return CheckoutResult{Quote: screened, Status: screened.Status}, ErrTransactionBlocked
		}
	}

	held, err := u.lc.reserveCoupon(ctx, screened, next)
	if err != nil {
		u.abort(ctx, screened, prev)
		metrics.CheckoutOutcomes.WithLabelValues("coupon_conflict").Inc()
		log.WithError(err).Warn("[checkout][usecase] coupon reservation lost")
		return CheckoutResult{}, err
	}

	res, err := u.gateway.CreateCharge(ctx, entities.ChargeRequest{
		QuoteID:        held.ID,
		Description:    fmt.Sprintf("Policy %s (%s)", held.ID, held.Premium.Details.Duration),
		Amount:         held.Premium.Total,
		Currency:       held.Currency,
		IdempotencyKey: entities.IdempotencyKey(held.ID, next),
		PaymentToken:   cmd.PaymentToken,
		Customer:       held.Customer,
	})
	if err != nil {
		log.WithError(err).Error("[checkout][usecase] gateway create failed")
		failed := u.failAttempt(ctx, held, next, u.gateway.Name())
		metrics.CheckoutOutcomes.WithLabelValues("gateway_error").Inc()
		return CheckoutResult{Quote: failed, Status: failed.Status}, gatewayError(err)
	}

	if res.Status == entities.ChargeStatusFailed {
		log.WithFields(logrus.Fields{"handle": res.Handle, "failure_code": res.FailureCode}).Warn("[checkout][usecase] charge declined")
		failed := u.failAttempt(ctx, held, next, res.Provider)
		metrics.CheckoutOutcomes.WithLabelValues("declined").Inc()
		return CheckoutResult{Quote: failed, Status: failed.Status}, gatewayError(&entities.GatewayError{
			Provider: res.Provider,
			Code:     res.FailureCode,
			Message:  res.FailureText,
			Safe:     res.FailureText != "",
		})
	}

	recorded, err := u.recordCharge(ctx, held, next, res)
	if err != nil {
		log.WithError(err).WithField("handle", res.Handle).Error("[checkout][usecase] CRITICAL charge created but not recorded")
		return CheckoutResult{}, err
	}

	result := CheckoutResult{
		Handle:       res.Handle,
		ClientSecret: res.ClientSecret,
		RedirectURL:  res.RedirectURL,
	}
	if res.Status == entities.ChargeStatusSucceeded && recorded.PaymentStatus == entities.PaymentStatusUnpaid {
		paid, err := u.lc.markPaid(ctx, recorded, res.Handle, u.now().UTC())
		result.Quote, result.Status = paid, paid.Status
		return result, err
	}

	if recorded.Status == entities.QuoteStatusAwaitingPayment {
		metrics.CheckoutOutcomes.WithLabelValues("awaiting_payment").Inc()
	}
	log.WithFields(logrus.Fields{"handle": res.Handle, "status": recorded.Status}).Info("[checkout][usecase] checkout done")
	result.Quote, result.Status = recorded, recorded.Status
	return result, nil
}

func (u *CheckoutUseCase) ConfirmPayment(ctx context.Context, conf entities.PaymentConfirmation) (entities.Quote, error) {
	log := u.log.WithFields(logrus.Fields{
		"provider": conf.Provider,
		"event_id": conf.EventID,
		"handle":   conf.Handle,
		"quote_id": conf.QuoteID,
		"status":   conf.Status,
	})
	if conf.Ignored {
		log.Debug("[payment][usecase] confirmation ignored")
		return entities.Quote{}, nil
	}
	if strings.TrimSpace(conf.QuoteID) == "" {
		return entities.Quote{}, validationError("invalid_confirmation", "confirmation does not reference a quote")
	}

	q, err := u.lc.load(ctx, conf.QuoteID)
	if err != nil {
		return entities.Quote{}, err
	}

	if conf.Handle != "" && q.PaymentHandle != "" && conf.Handle != q.PaymentHandle {
		if conf.Status != entities.ChargeStatusSucceeded {
			log.Info("[payment][usecase] outcome for a superseded attempt ignored")
			return q, nil
		}
		log.WithField("current_handle", q.PaymentHandle).Error("[payment][usecase] payment succeeded on a superseded attempt, reconciliation required")
		return q, ErrPaymentMismatch
	}

	switch conf.Status {
	case entities.ChargeStatusSucceeded:
		if conf.Amount > 0 {
			want := money.ToMinorUnits(q.Premium.Total, q.Currency)
			if conf.Amount != want || (conf.Currency != "" && !strings.EqualFold(conf.Currency, q.Currency)) {
				log.WithFields(logrus.Fields{"amount": conf.Amount, "expected": want, "currency": conf.Currency}).
					Error("[payment][usecase] confirmed amount does not match the quote")
				return q, ErrPaymentMismatch
			}
		}
		reference := conf.Handle
		if reference == "" {
			reference = q.PaymentHandle
		}
		return u.lc.markPaid(ctx, q, reference, u.now().UTC())

	case entities.ChargeStatusFailed:
		if q.PaymentStatus == entities.PaymentStatusPaid || q.Status != entities.QuoteStatusAwaitingPayment {
			log.WithField("quote_status", q.Status).Info("[payment][usecase] failure outcome ignored")
			return q, nil
		}
		metrics.CheckoutOutcomes.WithLabelValues("declined").Inc()
		return u.failAttempt(ctx, q, q.PaymentAttempt, conf.Provider), nil

	default:
		return q, nil
	}
}

func (u *CheckoutUseCase) HandleWebhook(ctx context.Context, payload []byte, header http.Header) (entities.Quote, error) {
	if u.gateway == nil {
		return entities.Quote{}, internalError("webhook", ErrGatewayNotConfigured)
	}
	conf, err := u.gateway.ParseWebhook(ctx, payload, header)
	if err != nil {
		u.log.WithError(err).WithField("provider", u.gateway.Name()).Warn("[payment][usecase] webhook rejected")
		if errors.Is(err, entities.ErrInvalidWebhook) {
			return entities.Quote{}, &Error{Kind: KindValidation, Code: "invalid_webhook", Message: "webhook could not be verified", Err: err}
		}
		return entities.Quote{}, gatewayError(err)
	}
	return u.ConfirmPayment(ctx, conf)
}

func (u *CheckoutUseCase) checkoutAllowed(q entities.Quote) error {
	switch {
	case q.PaymentStatus == entities.PaymentStatusPaid:
		return ErrQuoteAlreadyPaid
	case q.Status == entities.QuoteStatusExpired:
		return ErrQuoteExpired
	case q.Status == entities.QuoteStatusBlocked:
		return ErrTransactionBlocked
	case q.Status == entities.QuoteStatusFailed && q.FraudStatus == entities.FraudStatusBlock:
		return ErrTransactionBlocked
	case q.Status == entities.QuoteStatusScreening:
		return ErrCheckoutInProgress
	case q.Status == entities.QuoteStatusAwaitingPayment && q.PaymentHandle != "":
		return ErrCheckoutInProgress
	case u.settings.isManual(q.PaymentMethod):
		return ErrQuoteNotPayable
	case q.Status == entities.QuoteStatusPending, q.Status == entities.QuoteStatusFailed, q.Status == entities.QuoteStatusAwaitingPayment:
		return nil
	}
	return ErrQuoteNotPayable
}

// recheckCoupon validates the coupon again: it may have expired or run out
// since the quote was priced.
func (u *CheckoutUseCase) recheckCoupon(ctx context.Context, q entities.Quote, now time.Time) error {
	if q.CouponCode == "" || q.CouponRedeemed {
		return nil
	}
	candidates, err := u.lc.coupons.FindByCode(ctx, q.CouponCode)
	if err != nil {
		return internalError("find coupon", err)
	}
	_, err = coupon.Check(candidates, q.CouponCode, q.Premium.Subtotal, coupon.Context{
		LastName:     q.Customer.LastName,
		DateOfBirth:  q.Customer.DateOfBirth,
		Registration: q.Coverage.Vehicle.Registration,
	}, now)
	if err == nil {
		return nil
	}
	var rej *coupon.Rejection
	if errors.As(err, &rej) && rej.Reason == coupon.ReasonQuotaExhausted {
		return ErrCouponNoLongerAvailable.withCause(err)
	}
	return couponError(err)
}

// abort returns a locked quote to the status it had before checkout started.
func (u *CheckoutUseCase) abort(ctx context.Context, q entities.Quote, prev entities.QuoteStatus) {
	attempt := q.PaymentAttempt
	if _, err := u.lc.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{StatusIn: []entities.QuoteStatus{entities.QuoteStatusScreening}, PaymentAttempt: &attempt},
		interfaces.QuoteUpdate{Status: &prev},
	); err != nil {
		u.log.WithError(err).WithField("quote_id", q.ID).Error("[checkout][usecase] reverting checkout failed")
	}
}

// failAttempt closes the current attempt as failed and gives back its coupon unit.
func (u *CheckoutUseCase) failAttempt(ctx context.Context, q entities.Quote, attempt int, provider string) entities.Quote {
	failed, err := u.lc.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{
			StatusIn:       []entities.QuoteStatus{entities.QuoteStatusScreening, entities.QuoteStatusAwaitingPayment},
			PaymentStatus:  entities.PaymentStatusUnpaid,
			PaymentAttempt: &attempt,
		},
		interfaces.QuoteUpdate{
			Status:          ptr(entities.QuoteStatusFailed),
			PaymentProvider: &provider,
			PaymentHandle:   ptr(""),
		},
	)
	if err != nil {
		u.log.WithError(err).WithField("quote_id", q.ID).Error("[checkout][usecase] failing attempt failed")
		return q
	}
	if failed.ID == "" {
		return q
	}
	return u.lc.releaseCoupon(ctx, failed)
}

// recordCharge stores the gateway handle. The charge already exists at this
// point, so the write is retried before giving up.
func (u *CheckoutUseCase) recordCharge(ctx context.Context, q entities.Quote, attempt int, res entities.ChargeResult) (entities.Quote, error) {
	cond := interfaces.QuoteCondition{
		StatusIn:       []entities.QuoteStatus{entities.QuoteStatusScreening},
		PaymentAttempt: &attempt,
	}
	upd := interfaces.QuoteUpdate{
		Status:          ptr(entities.QuoteStatusAwaitingPayment),
		PaymentProvider: &res.Provider,
		PaymentHandle:   &res.Handle,
	}

	var lastErr error
	for i := 0; i < recordChargeAttempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return q, internalError("record charge", ctx.Err())
			case <-time.After(time.Duration(i) * 100 * time.Millisecond):
			}
		}
		recorded, err := u.lc.quotes.Update(ctx, q.ID, cond, upd)
		if err != nil {
			lastErr = err
			continue
		}
		if recorded.ID != "" {
			return recorded, nil
		}
		// A webhook may have confirmed the payment before the handle was written.
		current, err := u.lc.load(ctx, q.ID)
		if err != nil {
			return q, err
		}
		return current, nil
	}
	return q, internalError("record charge", lastErr)
}
