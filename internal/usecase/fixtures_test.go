package usecase

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"policy_checkout/internal/adapter/persistence/memory"
	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/domain/fraud"
	"policy_checkout/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testSettings() Settings {
	return Settings{
		Fraud:         fraud.Config{BlockThreshold: 80, WarnThreshold: 60, FailOpen: true},
		Rates:         pricing.DefaultRateTable(),
		Currency:      "GBP",
		ExpiryWindow:  10 * time.Minute,
		PolicyPrefix:  "POL",
		ManualMethods: []string{"manual"},
		SweepBatch:    10,
	}
}

type fakeRisk struct {
	mu       sync.Mutex
	resp     *fraud.ProviderResponse
	err      error
	calls    int
	feedback []entities.FeedbackRequest
}

func (f *fakeRisk) Score(context.Context, entities.ScreeningRequest) (*fraud.ProviderResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.resp, f.err
}

func (f *fakeRisk) Feedback(_ context.Context, req entities.FeedbackRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedback = append(f.feedback, req)
	return nil
}

func (f *fakeRisk) set(resp *fraud.ProviderResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resp, f.err = resp, err
}

func (f *fakeRisk) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func scored(v float64) *fraud.ProviderResponse {
	return &fraud.ProviderResponse{Score: &v}
}

type fakeIssuer struct {
	mu   sync.Mutex
	docs []entities.IssuanceDocument
	err  error
}

func (f *fakeIssuer) Issue(_ context.Context, doc entities.IssuanceDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeIssuer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

// fakeGateway answers every create call with status; handles are "h-<idempotency key>".
type fakeGateway struct {
	mu     sync.Mutex
	kind   entities.GatewayKind
	status entities.ChargeStatus
	err    error
	keys   []string
}

func (f *fakeGateway) Name() string               { return "fake" }
func (f *fakeGateway) Kind() entities.GatewayKind { return f.kind }

func (f *fakeGateway) CreateCharge(_ context.Context, req entities.ChargeRequest) (entities.ChargeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, req.IdempotencyKey)
	if f.err != nil {
		return entities.ChargeResult{}, f.err
	}
	res := entities.ChargeResult{Provider: "fake", Handle: "h-" + req.IdempotencyKey, Status: f.status}
	switch f.kind {
	case entities.GatewayKindIntent:
		res.ClientSecret = res.Handle + "_secret"
	case entities.GatewayKindRedirect:
		res.RedirectURL = "https://pay.example/" + res.Handle
	}
	if f.status == entities.ChargeStatusFailed {
		res.FailureCode = "card_declined"
		res.FailureText = "Your card was declined."
	}
	return res, nil
}

func (f *fakeGateway) ParseWebhook(context.Context, []byte, http.Header) (entities.PaymentConfirmation, error) {
	return entities.PaymentConfirmation{}, entities.ErrInvalidWebhook
}

func (f *fakeGateway) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keys...)
}

// harness wires every use case to the in-memory repositories and one clock.
type harness struct {
	clock    *clock
	quotes   *memory.QuoteRepository
	coupons  *memory.CouponRepository
	risk     *fakeRisk
	issuer   *fakeIssuer
	gateway  *fakeGateway
	quote    *QuoteUseCase
	checkout *CheckoutUseCase
	expiry   *ExpiryUseCase
	admin    *AdminReviewUseCase
}

func newHarness(t *testing.T, kind entities.GatewayKind, status entities.ChargeStatus, coupons ...entities.Coupon) *harness {
	t.Helper()
	return newHarnessWith(t, testSettings(), kind, status, coupons...)
}

func newHarnessWith(t *testing.T, settings Settings, kind entities.GatewayKind, status entities.ChargeStatus, coupons ...entities.Coupon) *harness {
	t.Helper()
	h := &harness{
		clock:   &clock{now: t0},
		quotes:  memory.NewQuoteRepository(),
		coupons: memory.NewCouponRepository(coupons...),
		risk:    &fakeRisk{resp: scored(12)},
		issuer:  &fakeIssuer{},
		gateway: &fakeGateway{kind: kind, status: status},
	}
	h.quote = NewQuoteUseCase(h.quotes, h.coupons, settings)
	h.quote.now = h.clock.Now
	h.checkout = NewCheckoutUseCase(h.quotes, h.coupons, h.gateway, h.risk, h.issuer, settings)
	h.checkout.now = h.clock.Now
	h.expiry = NewExpiryUseCase(h.quotes, h.coupons, settings)
	h.expiry.now = h.clock.Now
	h.admin = NewAdminReviewUseCase(h.quotes, h.coupons, h.risk, h.issuer, settings)
	h.admin.now = h.clock.Now
	h.admin.spawn = func(f func()) { f() }
	return h
}

func quoteCommand() CreateQuoteCommand {
	return CreateQuoteCommand{
		Customer: entities.Customer{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Email:       "ada@example.com",
			DateOfBirth: "1990-05-10",
			Address:     entities.Address{Line1: "1 High St", City: "London", Postcode: "N1 1AA", Country: "GB"},
		},
		Vehicle:     entities.Vehicle{Registration: "ab12 cde"},
		Duration:    1,
		Unit:        entities.DurationUnitDays,
		LicenseHeld: "5+",
	}
}

func (h *harness) createQuote(t *testing.T, mutate ...func(*CreateQuoteCommand)) entities.Quote {
	t.Helper()
	cmd := quoteCommand()
	for _, m := range mutate {
		m(&cmd)
	}
	q, err := h.quote.CreateQuote(context.Background(), cmd)
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	return q
}

func (h *harness) reload(t *testing.T, id string) entities.Quote {
	t.Helper()
	q, err := h.quotes.GetByID(context.Background(), id)
	if err != nil || q.ID == "" {
		t.Fatalf("reload %s: %v", id, err)
	}
	return q
}

func percentCoupon(code string, pct int64, quota int) entities.Coupon {
	return entities.Coupon{
		Code:           code,
		DiscountType:   entities.DiscountTypePercent,
		DiscountValue:  decimal.NewFromInt(pct),
		QuotaAvailable: quota,
		Active:         true,
	}
}
