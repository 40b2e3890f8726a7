package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"policy_checkout/internal/domain/coupon"
	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/domain/pricing"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CreateQuoteCommand is a validated-at-the-boundary quote request.
type CreateQuoteCommand struct {
	Customer      entities.Customer
	Vehicle       entities.Vehicle
	Duration      int
	Unit          entities.DurationUnit
	LicenseHeld   string
	StartsAt      *time.Time
	CouponCode    string
	PaymentMethod entities.PaymentMethod
}

type PreviewCouponCommand struct {
	Code         string
	Total        decimal.Decimal
	LastName     string
	DateOfBirth  string
	Registration string
}

type CouponPreview struct {
	Code     string
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// IQuoteUseCase prices quotes and serves them back.
//
//   - CreateQuote prices, applies an optional coupon and stores a pending quote
//   - GetQuote expires an overdue quote before returning it
//   - PreviewCoupon validates a code without touching its usage counter
type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, cmd CreateQuoteCommand) (entities.Quote, error)
	GetQuote(ctx context.Context, id string) (entities.Quote, error)
	PreviewCoupon(ctx context.Context, cmd PreviewCouponCommand) (CouponPreview, error)
}

type QuoteUseCase struct {
	lc       *lifecycle
	settings Settings
	now      func() time.Time
	log      *logrus.Entry
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(quotes interfaces.IQuoteRepository, coupons interfaces.ICouponRepository, settings Settings) *QuoteUseCase {
	log := logrus.WithField("component", "quote")
	return &QuoteUseCase{
		lc:       &lifecycle{quotes: quotes, coupons: coupons, log: log},
		settings: settings,
		now:      time.Now,
		log:      log,
	}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, cmd CreateQuoteCommand) (entities.Quote, error) {
	now := u.now().UTC()
	cmd = normalizeQuoteCommand(cmd)
	if err := u.validate(cmd, now); err != nil {
		return entities.Quote{}, err
	}

	premium, err := pricing.Calculate(pricing.Input{
		Duration:    cmd.Duration,
		Unit:        cmd.Unit,
		DateOfBirth: cmd.Customer.DateOfBirth,
		LicenseHeld: cmd.LicenseHeld,
	}, u.settings.Rates, now)
	if err != nil {
		return entities.Quote{}, pricingError(err)
	}

	couponCode := ""
	if cmd.CouponCode != "" {
		c, err := u.checkCoupon(ctx, cmd.CouponCode, premium.Subtotal, coupon.Context{
			LastName:     cmd.Customer.LastName,
			DateOfBirth:  cmd.Customer.DateOfBirth,
			Registration: cmd.Vehicle.Registration,
		}, now)
		if err != nil {
			return entities.Quote{}, err
		}
		premium.CouponDiscount, premium.Total = coupon.Apply(c, premium.Subtotal, u.settings.Rates.MinimumPremium)
		couponCode = c.Code
	}

	startsAt := now.Add(u.settings.DefaultStartIn)
	if cmd.StartsAt != nil {
		startsAt = cmd.StartsAt.UTC()
	}

	q := entities.Quote{
		ID:       u.policyNumber(),
		Customer: cmd.Customer,
		Coverage: entities.Coverage{
			Duration:    cmd.Duration,
			Unit:        cmd.Unit,
			StartsAt:    startsAt,
			EndsAt:      coverageEnd(startsAt, cmd.Duration, cmd.Unit),
			LicenseHeld: cmd.LicenseHeld,
			Vehicle:     cmd.Vehicle,
		},
		Premium:       premium,
		Currency:      u.settings.Currency,
		PaymentMethod: cmd.PaymentMethod,
		CouponCode:    couponCode,
		Status:        entities.QuoteStatusPending,
		PaymentStatus: entities.PaymentStatusUnpaid,
		FraudStatus:   entities.FraudStatusUnchecked,
		CreatedAt:     now,
		UpdatedAt:     now,
		ExpiresAt:     u.settings.expiresAt(cmd.PaymentMethod, now),
	}

	created, err := u.lc.quotes.Create(ctx, q)
	if err != nil {
		u.log.WithError(err).WithField("quote_id", q.ID).Error("[quote][usecase] repository create failed")
		return entities.Quote{}, internalError("create quote", err)
	}
	u.log.WithFields(logrus.Fields{
		"quote_id": created.ID,
		"total":    created.Premium.Total.StringFixed(2),
		"coupon":   created.CouponCode,
	}).Info("[quote][usecase] quote created")
	return created, nil
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, id string) (entities.Quote, error) {
	q, err := u.lc.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	now := u.now().UTC()
	if q.Status.Expirable() && q.IsExpiredAt(now) {
		expired, ok, err := u.lc.expire(ctx, q, now)
		if err != nil {
			return entities.Quote{}, err
		}
		if ok {
			return expired, nil
		}
		return u.lc.load(ctx, id)
	}
	return q, nil
}

func (u *QuoteUseCase) PreviewCoupon(ctx context.Context, cmd PreviewCouponCommand) (CouponPreview, error) {
	if strings.TrimSpace(cmd.Code) == "" {
		return CouponPreview{}, validationError("invalid_coupon_code", "coupon code is required")
	}
	if !cmd.Total.IsPositive() {
		return CouponPreview{}, validationError("invalid_total", "total must be positive")
	}
	c, err := u.checkCoupon(ctx, cmd.Code, cmd.Total, coupon.Context{
		LastName:     cmd.LastName,
		DateOfBirth:  cmd.DateOfBirth,
		Registration: cmd.Registration,
	}, u.now().UTC())
	if err != nil {
		return CouponPreview{}, err
	}
	discount, total := coupon.Apply(c, cmd.Total, u.settings.Rates.MinimumPremium)
	return CouponPreview{Code: c.Code, Discount: discount, Total: total}, nil
}

func (u *QuoteUseCase) checkCoupon(ctx context.Context, code string, total decimal.Decimal, cctx coupon.Context, now time.Time) (entities.Coupon, error) {
	candidates, err := u.lc.coupons.FindByCode(ctx, code)
	if err != nil {
		u.log.WithError(err).WithField("coupon", code).Error("[coupon][usecase] lookup failed")
		return entities.Coupon{}, internalError("find coupon", err)
	}
	c, err := coupon.Check(candidates, code, total, cctx, now)
	if err != nil {
		return entities.Coupon{}, couponError(err)
	}
	return c, nil
}

func (u *QuoteUseCase) validate(cmd CreateQuoteCommand, now time.Time) error {
	c := cmd.Customer
	switch {
	case c.FirstName == "" || c.LastName == "":
		return validationError("invalid_name", "first and last name are required")
	case c.Email == "":
		return validationError("invalid_email", "email is required")
	case cmd.Vehicle.Registration == "":
		return validationError("invalid_registration", "vehicle registration is required")
	case !u.settings.Rates.KnownLicense(cmd.LicenseHeld):
		return validationError("invalid_license_held", fmt.Sprintf("unknown license bracket %q", cmd.LicenseHeld))
	case cmd.StartsAt != nil && cmd.StartsAt.Before(now.Add(-time.Minute)):
		return validationError("invalid_start", "coverage cannot start in the past")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return validationError("invalid_email", "email is not valid")
	}
	if cmd.PaymentMethod != entities.PaymentMethodCard && !u.settings.isManual(cmd.PaymentMethod) {
		return validationError("invalid_payment_method", fmt.Sprintf("unsupported payment method %q", cmd.PaymentMethod))
	}
	return nil
}

func (u *QuoteUseCase) policyNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:12]
	if u.settings.PolicyPrefix == "" {
		return id
	}
	return u.settings.PolicyPrefix + "-" + id
}

func normalizeQuoteCommand(cmd CreateQuoteCommand) CreateQuoteCommand {
	cmd.Customer.FirstName = strings.TrimSpace(cmd.Customer.FirstName)
	cmd.Customer.LastName = strings.TrimSpace(cmd.Customer.LastName)
	cmd.Customer.Email = strings.ToLower(strings.TrimSpace(cmd.Customer.Email))
	cmd.Customer.DateOfBirth = strings.TrimSpace(cmd.Customer.DateOfBirth)
	cmd.Vehicle.Registration = coupon.NormalizeRegistration(cmd.Vehicle.Registration)
	cmd.LicenseHeld = strings.TrimSpace(cmd.LicenseHeld)
	cmd.CouponCode = strings.TrimSpace(cmd.CouponCode)
	if cmd.PaymentMethod == "" {
		cmd.PaymentMethod = entities.PaymentMethodCard
	}
	return cmd
}

func pricingError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrInvalidDuration):
		return validationError("invalid_duration", err.Error())
	case errors.Is(err, pricing.ErrInvalidUnit):
		return validationError("invalid_unit", err.Error())
	case errors.Is(err, pricing.ErrInvalidDateOfBirth):
		return validationError("invalid_date_of_birth", err.Error())
	}
	return internalError("price quote", err)
}

func coverageEnd(start time.Time, duration int, unit entities.DurationUnit) time.Time {
	switch unit {
	case entities.DurationUnitHours:
		return start.Add(time.Duration(duration) * time.Hour)
	case entities.DurationUnitWeeks:
		return start.AddDate(0, 0, 7*duration)
	default:
		return start.AddDate(0, 0, duration)
	}
}
