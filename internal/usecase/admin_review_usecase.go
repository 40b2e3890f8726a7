package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type SortKey string

const (
	SortLatest       SortKey = "latest"
	SortOldest       SortKey = "oldest"
	SortExpiringSoon SortKey = "expiring_soon"
	SortAmountHigh   SortKey = "amount_high"
	SortAmountLow    SortKey = "amount_low"
	SortAlphabetical SortKey = "alphabetical"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortLatest, SortOldest, SortExpiringSoon, SortAmountHigh, SortAmountLow, SortAlphabetical:
		return true
	}
	return false
}

type ListFilter struct {
	Status entities.QuoteStatus
	Search string
	Sort   SortKey
	Limit  int
	Offset int
}

type QuotePage struct {
	Items []entities.Quote
	Total int
}

// IAdminReviewUseCase is the reviewer's workflow for flagged, failed and paid quotes.
type IAdminReviewUseCase interface {
	ApproveDespiteFlag(ctx context.Context, id, actor, note string) (entities.Quote, error)
	RejectFlagged(ctx context.Context, id, actor, note string) (entities.Quote, error)
	RetryScreen(ctx context.Context, id, actor string) (entities.Quote, error)
	RetryIssuance(ctx context.Context, id string) (entities.Quote, error)
	MarkPaidManually(ctx context.Context, id, actor, reference string) (entities.Quote, error)
	List(ctx context.Context, filter ListFilter) (QuotePage, error)
	Delete(ctx context.Context, id string) error
}

type AdminReviewUseCase struct {
	lc       *lifecycle
	risk     interfaces.IRiskProvider
	settings Settings
	now      func() time.Time
	spawn    func(func())
	log      *logrus.Entry
}

var _ IAdminReviewUseCase = (*AdminReviewUseCase)(nil)

func NewAdminReviewUseCase(
	quotes interfaces.IQuoteRepository,
	coupons interfaces.ICouponRepository,
	risk interfaces.IRiskProvider,
	issuer interfaces.IPolicyIssuer,
	settings Settings,
) *AdminReviewUseCase {
	log := logrus.WithField("component", "admin_review")
	return &AdminReviewUseCase{
		lc:       &lifecycle{quotes: quotes, coupons: coupons, issuer: issuer, log: log, failOpen: settings.Fraud.FailOpen},
		risk:     risk,
		settings: settings,
		now:      time.Now,
		spawn:    func(f func()) { go f() },
		log:      log,
	}
}

func (u *AdminReviewUseCase) ApproveDespiteFlag(ctx context.Context, id, actor, note string) (entities.Quote, error) {
	if strings.TrimSpace(actor) == "" {
		return entities.Quote{}, validationError("invalid_actor", "actor is required")
	}
	q, err := u.lc.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.Status != entities.QuoteStatusBlocked {
		return q, ErrQuoteNotBlocked
	}

	now := u.now().UTC()
	a := u.reviewEntry(entities.AssessmentSourceOverride, entities.FraudActionAllow, actor, note, now)
	upd := interfaces.QuoteUpdate{
		Status:           ptr(entities.QuoteStatusAwaitingPayment),
		FraudStatus:      ptr(entities.FraudStatusOK),
		FraudCheckedAt:   &now,
		AppendAssessment: &a,
		ExpiresAt:        u.settings.expiresAt(q.PaymentMethod, now),
	}
	approved, err := u.lc.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{StatusIn: []entities.QuoteStatus{entities.QuoteStatusBlocked}, PaymentStatus: entities.PaymentStatusUnpaid},
		upd,
	)
	if err != nil {
		return q, internalError("approve quote", err)
	}
	if approved.ID == "" {
		return q, ErrQuoteNotBlocked
	}

	u.log.WithFields(logrus.Fields{"quote_id": q.ID, "actor": actor}).Info("[review][usecase] flagged quote approved")
	u.feedback(approved, entities.FeedbackApprove, actor, note)
	return approved, nil
}

func (u *AdminReviewUseCase) RejectFlagged(ctx context.Context, id, actor, note string) (entities.Quote, error) {
	if strings.TrimSpace(actor) == "" {
		return entities.Quote{}, validationError("invalid_actor", "actor is required")
	}
	q, err := u.lc.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.Status != entities.QuoteStatusBlocked {
		return q, ErrQuoteNotBlocked
	}

	now := u.now().UTC()
	a := u.reviewEntry(entities.AssessmentSourceReject, entities.FraudActionBlock, actor, note, now)
	rejected, err := u.lc.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{StatusIn: []entities.QuoteStatus{entities.QuoteStatusBlocked}, PaymentStatus: entities.PaymentStatusUnpaid},
		interfaces.QuoteUpdate{
			Status:           ptr(entities.QuoteStatusFailed),
			FraudStatus:      ptr(entities.FraudStatusBlock),
			FraudCheckedAt:   &now,
			AppendAssessment: &a,
		},
	)
	if err != nil {
		return q, internalError("reject quote", err)
	}
	if rejected.ID == "" {
		return q, ErrQuoteNotBlocked
	}

	u.log.WithFields(logrus.Fields{"quote_id": q.ID, "actor": actor}).Info("[review][usecase] flagged quote rejected")
	u.feedback(rejected, entities.FeedbackReject, actor, note)
	return rejected, nil
}

// RetryScreen runs the risk check again with the stored customer context.
func (u *AdminReviewUseCase) RetryScreen(ctx context.Context, id, actor string) (entities.Quote, error) {
	q, err := u.lc.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.Status != entities.QuoteStatusBlocked && q.Status != entities.QuoteStatusFailed {
		return q, ErrQuoteNotScreenable
	}

	now := u.now().UTC()
	attempt := q.PaymentAttempt
	upd := interfaces.QuoteUpdate{Status: ptr(entities.QuoteStatusScreening)}
	if exp := u.settings.expiresAt(q.PaymentMethod, now); exp != nil {
		upd.ExpiresAt = exp
	}
	locked, err := u.lc.quotes.Update(ctx, q.ID,
		interfaces.QuoteCondition{
			StatusIn:       []entities.QuoteStatus{entities.QuoteStatusBlocked, entities.QuoteStatusFailed},
			PaymentStatus:  entities.PaymentStatusUnpaid,
			PaymentAttempt: &attempt,
		},
		upd,
	)
	if err != nil {
		return q, internalError("start rescreen", err)
	}
	if locked.ID == "" {
		return q, ErrQuoteNotScreenable
	}

	screened, a, err := u.lc.screen(ctx, u.risk, u.settings.Fraud, locked, ptr(entities.QuoteStatusAwaitingPayment), now)
	if err != nil {
		return locked, err
	}
	u.log.WithFields(logrus.Fields{"quote_id": q.ID, "actor": actor, "action": a.Action, "status": screened.Status}).
		Info("[review][usecase] quote re-screened")
	return screened, nil
}

func (u *AdminReviewUseCase) RetryIssuance(ctx context.Context, id string) (entities.Quote, error) {
	q, err := u.lc.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.Status != entities.QuoteStatusPaid || q.IssuanceTriggered {
		return q, ErrIssuanceNotPending
	}
	return u.lc.issue(ctx, q)
}

// MarkPaidManually records an offline payment. The reviewer's action is the
// audited override for a quote that was never cleared by screening.
func (u *AdminReviewUseCase) MarkPaidManually(ctx context.Context, id, actor, reference string) (entities.Quote, error) {
	actor, reference = strings.TrimSpace(actor), strings.TrimSpace(reference)
	if actor == "" {
		return entities.Quote{}, validationError("invalid_actor", "actor is required")
	}
	if reference == "" {
		return entities.Quote{}, validationError("invalid_reference", "payment reference is required")
	}
	q, err := u.lc.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	switch {
	case q.PaymentStatus == entities.PaymentStatusPaid:
		return q, ErrQuoteAlreadyPaid
	case q.Status == entities.QuoteStatusExpired:
		return q, ErrQuoteExpired
	case !u.settings.isManual(q.PaymentMethod):
		return q, ErrManualPaymentNotAllowed
	case q.Status != entities.QuoteStatusPending && q.Status != entities.QuoteStatusAwaitingPayment && q.Status != entities.QuoteStatusFailed:
		return q, ErrQuoteNotPayable
	}

	now := u.now().UTC()
	upd := interfaces.QuoteUpdate{}
	changed := false
	if q.FraudStatus != entities.FraudStatusOK && q.FraudStatus != entities.FraudStatusWarn {
		a := u.reviewEntry(entities.AssessmentSourceOverride, entities.FraudActionAllow, actor, "manual payment "+reference, now)
		upd.FraudStatus = ptr(entities.FraudStatusOK)
		upd.AppendAssessment = &a
		changed = true
	}
	redeemed := false
	if q.CouponCode != "" && !q.CouponRedeemed {
		ok, err := u.lc.coupons.Redeem(ctx, q.CouponCode)
		if err != nil {
			return q, internalError("redeem coupon", err)
		}
		if !ok {
			return q, ErrCouponNoLongerAvailable
		}
		redeemed = true
		upd.CouponRedeemed = ptr(true)
		changed = true
	}

	if changed {
		prepared, err := u.lc.quotes.Update(ctx, q.ID,
			interfaces.QuoteCondition{StatusIn: []entities.QuoteStatus{q.Status}, PaymentStatus: entities.PaymentStatusUnpaid},
			upd,
		)
		if err != nil || prepared.ID == "" {
			if redeemed {
				if rerr := u.lc.coupons.Release(ctx, q.CouponCode); rerr != nil {
					u.log.WithError(rerr).WithField("coupon", q.CouponCode).Error("[coupon][usecase] quota release failed")
				}
			}
			if err != nil {
				return q, internalError("prepare manual payment", err)
			}
			return q, ErrQuoteNotPayable
		}
		q = prepared
	}

	paid, err := u.lc.markPaid(ctx, q, reference, now)
	if err != nil {
		u.lc.releaseCoupon(ctx, q)
		return paid, err
	}
	u.log.WithFields(logrus.Fields{"quote_id": q.ID, "actor": actor, "reference": reference}).Info("[review][usecase] manual payment recorded")
	return paid, nil
}

func (u *AdminReviewUseCase) List(ctx context.Context, filter ListFilter) (QuotePage, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return QuotePage{}, validationError("invalid_status", "unknown status filter")
	}
	if filter.Sort == "" {
		filter.Sort = SortLatest
	}
	if !filter.Sort.Valid() {
		return QuotePage{}, validationError("invalid_sort", "unknown sort key")
	}
	if filter.Offset < 0 {
		return QuotePage{}, validationError("invalid_offset", "offset cannot be negative")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	all, err := u.lc.quotes.List(ctx, interfaces.QuoteFilter{Status: filter.Status})
	if err != nil {
		u.log.WithError(err).Error("[review][usecase] list failed")
		return QuotePage{}, internalError("list quotes", err)
	}

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	items := make([]entities.Quote, 0, len(all))
	for _, q := range all {
		if term == "" || matchesSearch(q, term) {
			items = append(items, q)
		}
	}
	sortQuotes(items, filter.Sort)

	total := len(items)
	start := min(filter.Offset, total)
	end := min(start+limit, total)
	return QuotePage{Items: items[start:end], Total: total}, nil
}

// Delete removes an expired quote. An unpaid quote past its window is expired first.
func (u *AdminReviewUseCase) Delete(ctx context.Context, id string) error {
	q, err := u.lc.load(ctx, id)
	if err != nil {
		return err
	}
	if q.PaymentStatus == entities.PaymentStatusPaid {
		return ErrQuoteNotDeletable
	}
	now := u.now().UTC()
	if q.Status.Expirable() && q.IsExpiredAt(now) {
		if _, _, err := u.lc.expire(ctx, q, now); err != nil {
			return err
		}
	}

	deleted, err := u.lc.quotes.Delete(ctx, q.ID, interfaces.QuoteCondition{
		StatusIn:      []entities.QuoteStatus{entities.QuoteStatusExpired},
		PaymentStatus: entities.PaymentStatusUnpaid,
	})
	if err != nil {
		return internalError("delete quote", err)
	}
	if !deleted {
		return ErrQuoteNotDeletable
	}
	u.log.WithField("quote_id", q.ID).Info("[review][usecase] quote deleted")
	return nil
}

func (u *AdminReviewUseCase) reviewEntry(source entities.AssessmentSource, action entities.FraudAction, actor, note string, now time.Time) entities.FraudAssessment {
	return entities.FraudAssessment{
		ID:         uuid.NewString(),
		Source:     source,
		Action:     action,
		Thresholds: u.settings.Fraud.Thresholds(),
		Actor:      strings.TrimSpace(actor),
		Note:       strings.TrimSpace(note),
		CheckedAt:  now,
	}
}

// feedback reports the reviewer's decision to the risk provider without
// holding up the response. Failures are only logged.
func (u *AdminReviewUseCase) feedback(q entities.Quote, decision entities.FeedbackDecision, actor, note string) {
	if u.risk == nil {
		return
	}
	req := entities.FeedbackRequest{
		OrderID:  q.ID,
		Email:    q.Customer.Email,
		Decision: decision,
		Actor:    actor,
		Note:     note,
	}
	u.spawn(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := u.risk.Feedback(ctx, req); err != nil {
			u.log.WithError(err).WithFields(logrus.Fields{"quote_id": q.ID, "decision": decision}).Warn("[review][usecase] risk feedback failed")
		}
	})
}

func matchesSearch(q entities.Quote, term string) bool {
	fields := []string{
		q.ID,
		q.Customer.FirstName,
		q.Customer.LastName,
		q.Customer.FullName(),
		q.Customer.Email,
		q.Coverage.Vehicle.Registration,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func sortQuotes(items []entities.Quote, key SortKey) {
	slices.SortStableFunc(items, func(a, b entities.Quote) int {
		switch key {
		case SortOldest:
			return a.CreatedAt.Compare(b.CreatedAt)
		case SortExpiringSoon:
			switch {
			case a.ExpiresAt == nil && b.ExpiresAt == nil:
				return 0
			case a.ExpiresAt == nil:
				return 1
			case b.ExpiresAt == nil:
				return -1
			}
			return a.ExpiresAt.Compare(*b.ExpiresAt)
		case SortAmountHigh:
			return b.Premium.Total.Cmp(a.Premium.Total)
		case SortAmountLow:
			return a.Premium.Total.Cmp(b.Premium.Total)
		case SortAlphabetical:
			return strings.Compare(strings.ToLower(a.Customer.FullName()), strings.ToLower(b.Customer.FullName()))
		default:
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	})
}
