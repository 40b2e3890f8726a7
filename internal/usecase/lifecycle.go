package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/domain/fraud"
	"policy_checkout/internal/infrastructure/metrics"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// lifecycle holds the quote transitions shared by checkout, review and expiry.
// Every transition is a guarded repository update; a zero Quote back from the
// repository means another actor moved the quote first.
type lifecycle struct {
	quotes  interfaces.IQuoteRepository
	coupons interfaces.ICouponRepository
	issuer  interfaces.IPolicyIssuer
	log     *logrus.Entry

	// failOpen lets a quote whose risk call errored be paid.
	failOpen bool
}

// clearedFraudStatuses lists the fraud statuses a quote may be paid with.
// Admin overrides set the status to ok before payment is recorded.
func (l *lifecycle) clearedFraudStatuses() []entities.FraudStatus {
	cleared := []entities.FraudStatus{entities.FraudStatusOK, entities.FraudStatusWarn}
	if l.failOpen {
		cleared = append(cleared, entities.FraudStatusError)
	}
	return cleared
}

func (l *lifecycle) load(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := l.quotes.GetByID(ctx, id)
	if err != nil {
		l.log.WithError(err).WithField("quote_id", id).Error("[quote][usecase] repository get failed")
		return entities.Quote{}, internalError("get quote", err)
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// expire moves an overdue unpaid quote to expired. It is a no-op when a payment
// or another transition won the race.
func (l *lifecycle) expire(ctx context.Context, q entities.Quote, now time.Time) (entities.Quote, bool, error) {
	expired, err := l.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{StatusIn: expirableStatuses, PaymentStatus: entities.PaymentStatusUnpaid, ExpiresBefore: &now},
		interfaces.QuoteUpdate{Status: ptr(entities.QuoteStatusExpired)},
	)
	if err != nil {
		l.log.WithError(err).WithField("quote_id", q.ID).Error("[expiry][usecase] expire update failed")
		return q, false, internalError("expire quote", err)
	}
	if expired.ID == "" {
		return q, false, nil
	}
	metrics.QuotesExpired.Inc()
	l.log.WithFields(logrus.Fields{"quote_id": q.ID, "previous_status": q.Status}).Info("[expiry][usecase] quote expired")
	return l.releaseCoupon(ctx, expired), true, nil
}

// releaseCoupon gives back the coupon unit held by q, at most once.
func (l *lifecycle) releaseCoupon(ctx context.Context, q entities.Quote) entities.Quote {
	if q.CouponCode == "" || !q.CouponRedeemed {
		return q
	}
	log := l.log.WithFields(logrus.Fields{"quote_id": q.ID, "coupon": q.CouponCode})
	released, err := l.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{CouponRedeemed: ptr(true)},
		interfaces.QuoteUpdate{CouponRedeemed: ptr(false)},
	)
	if err != nil {
		log.WithError(err).Error("[coupon][usecase] release claim failed")
		return q
	}
	if released.ID == "" {
		return q
	}
	if err := l.coupons.Release(ctx, q.CouponCode); err != nil {
		log.WithError(err).Error("[coupon][usecase] quota release failed, used count is one too high")
	}
	return released
}

// reserveCoupon takes one unit of quota for the attempt in flight.
func (l *lifecycle) reserveCoupon(ctx context.Context, q entities.Quote, attempt int) (entities.Quote, error) {
	if q.CouponCode == "" || q.CouponRedeemed {
		return q, nil
	}
	ok, err := l.coupons.Redeem(ctx, q.CouponCode)
	if err != nil {
		return q, internalError("redeem coupon", err)
	}
	if !ok {
		return q, ErrCouponNoLongerAvailable
	}
	held, err := l.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{StatusIn: []entities.QuoteStatus{entities.QuoteStatusScreening}, PaymentAttempt: &attempt},
		interfaces.QuoteUpdate{CouponRedeemed: ptr(true)},
	)
	if err != nil || held.ID == "" {
		if rerr := l.coupons.Release(ctx, q.CouponCode); rerr != nil {
			l.log.WithError(rerr).WithField("coupon", q.CouponCode).Error("[coupon][usecase] quota release failed")
		}
		if err != nil {
			return q, internalError("record coupon redemption", err)
		}
		return q, ErrCheckoutInProgress
	}
	return held, nil
}

// screen calls the risk provider and persists the assessment before anything
// acts on it. A halting decision moves the quote to blocked; otherwise the quote
// moves to pass, or stays where it is when pass is nil.
func (l *lifecycle) screen(ctx context.Context, risk interfaces.IRiskProvider, cfg fraud.Config, q entities.Quote, pass *entities.QuoteStatus, now time.Time) (entities.Quote, entities.FraudAssessment, error) {
	var (
		resp    *fraud.ProviderResponse
		callErr error
	)
	if risk != nil {
		resp, callErr = risk.Score(ctx, entities.NewScreeningRequest(q))
	} else {
		callErr = fraud.ErrProviderUnavailable
	}
	a := fraud.Decide(resp, callErr, cfg, now)
	a.ID = uuid.NewString()
	metrics.FraudDecisions.WithLabelValues(string(a.Action)).Inc()

	log := l.log.WithFields(logrus.Fields{"quote_id": q.ID, "attempt": q.PaymentAttempt, "action": a.Action})
	if callErr != nil {
		log.WithError(callErr).Warn("[fraud][usecase] risk provider call failed")
	}

	upd := interfaces.QuoteUpdate{
		FraudStatus:      ptr(a.FraudStatus()),
		FraudCheckedAt:   &a.CheckedAt,
		AppendAssessment: &a,
		Status:           pass,
	}
	if a.Score != nil {
		upd.FraudScore = a.Score
	}
	if a.Halts() {
		upd.Status = ptr(entities.QuoteStatusBlocked)
	}

	attempt := q.PaymentAttempt
	screened, err := l.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{StatusIn: []entities.QuoteStatus{entities.QuoteStatusScreening}, PaymentAttempt: &attempt},
		upd,
	)
	if err != nil {
		log.WithError(err).Error("[fraud][usecase] persisting assessment failed")
		return q, a, internalError("persist assessment", err)
	}
	if screened.ID == "" {
		return q, a, ErrCheckoutInProgress
	}
	log.Info("[fraud][usecase] screening recorded")
	return screened, a, nil
}

// markPaid records a confirmed payment and hands the policy to issuance.
// A second confirmation is a no-op. A confirmation for an expired quote, or for
// one that has not cleared screening, is rejected.
func (l *lifecycle) markPaid(ctx context.Context, q entities.Quote, reference string, now time.Time) (entities.Quote, error) {
	log := l.log.WithFields(logrus.Fields{"quote_id": q.ID, "reference": reference})

	upd := interfaces.QuoteUpdate{
		Status:           ptr(entities.QuoteStatusPaid),
		PaymentStatus:    ptr(entities.PaymentStatusPaid),
		PaidAt:           &now,
		PaymentReference: &reference,
		ClearExpiresAt:   true,
	}

	redeemedHere := false
	if q.CouponCode != "" && !q.CouponRedeemed && q.PaymentStatus == entities.PaymentStatusUnpaid && q.Status != entities.QuoteStatusExpired {
		ok, err := l.coupons.Redeem(ctx, q.CouponCode)
		switch {
		case err != nil:
			log.WithError(err).Error("[coupon][usecase] redeem on confirmation failed")
		case !ok:
			log.WithField("coupon", q.CouponCode).Warn("[coupon][usecase] quota exhausted at confirmation, payment kept")
		default:
			redeemedHere = true
			upd.CouponRedeemed = ptr(true)
		}
	}

	paid, err := l.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{
			StatusIn:      payableStatuses,
			PaymentStatus: entities.PaymentStatusUnpaid,
			FraudStatusIn: l.clearedFraudStatuses(),
		},
		upd,
	)
	if err != nil || paid.ID == "" {
		if redeemedHere {
			if rerr := l.coupons.Release(ctx, q.CouponCode); rerr != nil {
				log.WithError(rerr).Error("[coupon][usecase] quota release failed")
			}
		}
	}
	if err != nil {
		log.WithError(err).Error("[payment][usecase] CRITICAL payment confirmed but quote update failed")
		return q, internalError("mark paid", err)
	}

	if paid.ID == "" {
		current, err := l.load(ctx, q.ID)
		if err != nil {
			return q, err
		}
		switch {
		case current.PaymentStatus == entities.PaymentStatusPaid:
			log.Info("[payment][usecase] duplicate confirmation ignored")
			return current, nil
		case current.Status == entities.QuoteStatusExpired:
			log.Warn("[payment][usecase] payment confirmed for an expired quote, refund required")
			return current, ErrQuoteExpired
		case !slices.Contains(l.clearedFraudStatuses(), current.FraudStatus):
			log.WithField("fraud_status", current.FraudStatus).Warn("[payment][usecase] payment confirmed for a quote that has not cleared screening, refund required")
			return current, ErrFraudNotCleared
		default:
			log.WithField("status", current.Status).Warn("[payment][usecase] confirmation for a quote that cannot be paid")
			return current, ErrQuoteNotPayable
		}
	}

	metrics.CheckoutOutcomes.WithLabelValues("paid").Inc()
	log.Info("[payment][usecase] quote paid")

	// An issuance failure is logged and retried later; the payment stands.
	issued, _ := l.issue(ctx, paid)
	return issued, nil
}

// issue triggers issuance once per paid quote. On failure the claim is released
// and the quote stays paid so issuance can be retried.
func (l *lifecycle) issue(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	log := l.log.WithField("quote_id", q.ID)

	claimed, err := l.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{StatusIn: []entities.QuoteStatus{entities.QuoteStatusPaid}, IssuanceTriggered: ptr(false)},
		interfaces.QuoteUpdate{IssuanceTriggered: ptr(true)},
	)
	if err != nil {
		log.WithError(err).Error("[issuance][usecase] claim failed")
		return q, internalError("claim issuance", err)
	}
	if claimed.ID == "" {
		log.Info("[issuance][usecase] issuance already triggered")
		return q, nil
	}

	if err := l.issuer.Issue(ctx, entities.NewIssuanceDocument(claimed)); err != nil {
		metrics.IssuanceFailures.Inc()
		log.WithError(err).Error("[issuance][usecase] issuance failed, quote stays paid")
		reset, rerr := l.quotes.Update(ctx, q.ID,
			interfaces.QuoteCondition{StatusIn: []entities.QuoteStatus{entities.QuoteStatusPaid}, IssuanceTriggered: ptr(true)},
			interfaces.QuoteUpdate{IssuanceTriggered: ptr(false)},
		)
		if rerr != nil {
			log.WithError(rerr).Error("[issuance][usecase] releasing issuance claim failed")
		}
		if reset.ID == "" {
			reset = claimed
		}
		return reset, &Error{Kind: KindProvider, Code: "issuance_failed", Message: "policy issuance failed and can be retried", Err: err}
	}

	completed, err := l.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{StatusIn: []entities.QuoteStatus{entities.QuoteStatusPaid}, IssuanceTriggered: ptr(true)},
		interfaces.QuoteUpdate{Status: ptr(entities.QuoteStatusCompleted)},
	)
	if err != nil {
		log.WithError(err).Error("[issuance][usecase] policy issued but completion update failed")
		return claimed, internalError("complete quote", err)
	}
	if completed.ID == "" {
		return claimed, nil
	}
	log.Info("[issuance][usecase] policy issued")
	return completed, nil
}
