package repository

import (
	"encoding/json"

	"policy_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type addressItem struct {
	Line1    string `dynamodbav:"line1"`
	Line2    string `dynamodbav:"line2,omitempty"`
	City     string `dynamodbav:"city"`
	Postcode string `dynamodbav:"postcode"`
	Country  string `dynamodbav:"country"`
}

type customerItem struct {
	FirstName   string      `dynamodbav:"first_name"`
	LastName    string      `dynamodbav:"last_name"`
	Email       string      `dynamodbav:"email"`
	Phone       string      `dynamodbav:"phone,omitempty"`
	DateOfBirth string      `dynamodbav:"date_of_birth"`
	Address     addressItem `dynamodbav:"address"`
}

type coverageItem struct {
	Duration     int    `dynamodbav:"duration"`
	Unit         string `dynamodbav:"unit"`
	StartsAt     string `dynamodbav:"starts_at"`
	EndsAt       string `dynamodbav:"ends_at"`
	LicenseHeld  string `dynamodbav:"license_held"`
	Registration string `dynamodbav:"registration"`
	Make         string `dynamodbav:"make,omitempty"`
	Model        string `dynamodbav:"model,omitempty"`
}

// Money is stored as decimal strings so no precision is lost.
type premiumItem struct {
	BasePrice       string `dynamodbav:"base_price"`
	AgeDiscount     string `dynamodbav:"age_discount"`
	LicenseDiscount string `dynamodbav:"license_discount"`
	Subtotal        string `dynamodbav:"subtotal"`
	CouponDiscount  string `dynamodbav:"coupon_discount"`
	Total           string `dynamodbav:"total"`
	Age             int    `dynamodbav:"age"`
	Duration        string `dynamodbav:"duration"`
	LicenseHeld     string `dynamodbav:"license_held"`
}

type assessmentItem struct {
	ID        string   `dynamodbav:"id"`
	Source    string   `dynamodbav:"source"`
	Action    string   `dynamodbav:"action"`
	Score     *float64 `dynamodbav:"score,omitempty"`
	Flagged   bool     `dynamodbav:"flagged"`
	Error     string   `dynamodbav:"error,omitempty"`
	Block     float64  `dynamodbav:"block_threshold"`
	Warn      float64  `dynamodbav:"warn_threshold"`
	FailOpen  bool     `dynamodbav:"fail_open"`
	Raw       string   `dynamodbav:"raw,omitempty"`
	Actor     string   `dynamodbav:"actor,omitempty"`
	Note      string   `dynamodbav:"note,omitempty"`
	CheckedAt string   `dynamodbav:"checked_at"`
}

type quoteItem struct {
	ID                string           `dynamodbav:"id"`
	Customer          customerItem     `dynamodbav:"customer"`
	Coverage          coverageItem     `dynamodbav:"coverage"`
	Premium           premiumItem      `dynamodbav:"premium"`
	Currency          string           `dynamodbav:"currency"`
	PaymentMethod     string           `dynamodbav:"payment_method"`
	CouponCode        string           `dynamodbav:"coupon_code,omitempty"`
	CouponRedeemed    bool             `dynamodbav:"coupon_redeemed"`
	Status            string           `dynamodbav:"status"`
	PaymentStatus     string           `dynamodbav:"payment_status"`
	FraudStatus       string           `dynamodbav:"fraud_status"`
	FraudScore        *float64         `dynamodbav:"fraud_score,omitempty"`
	FraudDetails      []assessmentItem `dynamodbav:"fraud_details"`
	PaymentAttempt    int              `dynamodbav:"payment_attempt"`
	PaymentProvider   string           `dynamodbav:"payment_provider"`
	PaymentHandle     string           `dynamodbav:"payment_handle"`
	PaymentReference  string           `dynamodbav:"payment_reference"`
	IssuanceTriggered bool             `dynamodbav:"issuance_triggered"`
	ClientIP          string           `dynamodbav:"client_ip,omitempty"`
	UserAgent         string           `dynamodbav:"user_agent,omitempty"`
	CreatedAt         string           `dynamodbav:"created_at"`
	UpdatedAt         string           `dynamodbav:"updated_at"`
	ExpiresAt         *int64           `dynamodbav:"expires_at,omitempty"`
	PaidAt            string           `dynamodbav:"paid_at,omitempty"`
	FraudCheckedAt    string           `dynamodbav:"fraud_checked_at,omitempty"`
}

func toQuoteItem(q entities.Quote) quoteItem {
	it := quoteItem{
		ID: q.ID,
		Customer: customerItem{
			FirstName:   q.Customer.FirstName,
			LastName:    q.Customer.LastName,
			Email:       q.Customer.Email,
			Phone:       q.Customer.Phone,
			DateOfBirth: q.Customer.DateOfBirth,
			Address: addressItem{
				Line1:    q.Customer.Address.Line1,
				Line2:    q.Customer.Address.Line2,
				City:     q.Customer.Address.City,
				Postcode: q.Customer.Address.Postcode,
				Country:  q.Customer.Address.Country,
			},
		},
		Coverage: coverageItem{
			Duration:     q.Coverage.Duration,
			Unit:         string(q.Coverage.Unit),
			StartsAt:     formatTime(q.Coverage.StartsAt),
			EndsAt:       formatTime(q.Coverage.EndsAt),
			LicenseHeld:  q.Coverage.LicenseHeld,
			Registration: q.Coverage.Vehicle.Registration,
			Make:         q.Coverage.Vehicle.Make,
			Model:        q.Coverage.Vehicle.Model,
		},
		Premium: premiumItem{
			BasePrice:       q.Premium.BasePrice.String(),
			AgeDiscount:     q.Premium.AgeDiscount.String(),
			LicenseDiscount: q.Premium.LicenseDiscount.String(),
			Subtotal:        q.Premium.Subtotal.String(),
			CouponDiscount:  q.Premium.CouponDiscount.String(),
			Total:           q.Premium.Total.String(),
			Age:             q.Premium.Details.Age,
			Duration:        q.Premium.Details.Duration,
			LicenseHeld:     q.Premium.Details.LicenseHeld,
		},
		Currency:          q.Currency,
		PaymentMethod:     string(q.PaymentMethod),
		CouponCode:        q.CouponCode,
		CouponRedeemed:    q.CouponRedeemed,
		Status:            string(q.Status),
		PaymentStatus:     string(q.PaymentStatus),
		FraudStatus:       string(q.FraudStatus),
		FraudScore:        q.FraudScore,
		FraudDetails:      make([]assessmentItem, 0, len(q.FraudDetails)),
		PaymentAttempt:    q.PaymentAttempt,
		PaymentProvider:   q.PaymentProvider,
		PaymentHandle:     q.PaymentHandle,
		PaymentReference:  q.PaymentReference,
		IssuanceTriggered: q.IssuanceTriggered,
		ClientIP:          q.ClientIP,
		UserAgent:         q.UserAgent,
		CreatedAt:         formatTime(q.CreatedAt),
		UpdatedAt:         formatTime(q.UpdatedAt),
		PaidAt:            formatTimePtr(q.PaidAt),
		FraudCheckedAt:    formatTimePtr(q.FraudCheckedAt),
	}
	for _, a := range q.FraudDetails {
		it.FraudDetails = append(it.FraudDetails, toAssessmentItem(a))
	}
	if q.ExpiresAt != nil {
		unix := q.ExpiresAt.Unix()
		it.ExpiresAt = &unix
	}
	return it
}

func fromQuoteItem(it quoteItem) entities.Quote {
	q := entities.Quote{
		ID: it.ID,
		Customer: entities.Customer{
			FirstName:   it.Customer.FirstName,
			LastName:    it.Customer.LastName,
			Email:       it.Customer.Email,
			Phone:       it.Customer.Phone,
			DateOfBirth: it.Customer.DateOfBirth,
			Address: entities.Address{
				Line1:    it.Customer.Address.Line1,
				Line2:    it.Customer.Address.Line2,
				City:     it.Customer.Address.City,
				Postcode: it.Customer.Address.Postcode,
				Country:  it.Customer.Address.Country,
			},
		},
		Coverage: entities.Coverage{
			Duration:    it.Coverage.Duration,
			Unit:        entities.DurationUnit(it.Coverage.Unit),
			StartsAt:    parseTime(it.Coverage.StartsAt),
			EndsAt:      parseTime(it.Coverage.EndsAt),
			LicenseHeld: it.Coverage.LicenseHeld,
			Vehicle: entities.Vehicle{
				Registration: it.Coverage.Registration,
				Make:         it.Coverage.Make,
				Model:        it.Coverage.Model,
			},
		},
		Premium: entities.Premium{
			BasePrice:       parseDecimal(it.Premium.BasePrice),
			AgeDiscount:     parseDecimal(it.Premium.AgeDiscount),
			LicenseDiscount: parseDecimal(it.Premium.LicenseDiscount),
			Subtotal:        parseDecimal(it.Premium.Subtotal),
			CouponDiscount:  parseDecimal(it.Premium.CouponDiscount),
			Total:           parseDecimal(it.Premium.Total),
			Details: entities.PremiumDetails{
				Age:         it.Premium.Age,
				Duration:    it.Premium.Duration,
				LicenseHeld: it.Premium.LicenseHeld,
			},
		},
		Currency:          it.Currency,
		PaymentMethod:     entities.PaymentMethod(it.PaymentMethod),
		CouponCode:        it.CouponCode,
		CouponRedeemed:    it.CouponRedeemed,
		Status:            entities.QuoteStatus(it.Status),
		PaymentStatus:     entities.PaymentStatus(it.PaymentStatus),
		FraudStatus:       entities.FraudStatus(it.FraudStatus),
		FraudScore:        it.FraudScore,
		PaymentAttempt:    it.PaymentAttempt,
		PaymentProvider:   it.PaymentProvider,
		PaymentHandle:     it.PaymentHandle,
		PaymentReference:  it.PaymentReference,
		IssuanceTriggered: it.IssuanceTriggered,
		ClientIP:          it.ClientIP,
		UserAgent:         it.UserAgent,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
		PaidAt:            parseTimePtr(it.PaidAt),
		FraudCheckedAt:    parseTimePtr(it.FraudCheckedAt),
	}
	for _, a := range it.FraudDetails {
		q.FraudDetails = append(q.FraudDetails, fromAssessmentItem(a))
	}
	if it.ExpiresAt != nil {
		t := unixToTime(*it.ExpiresAt)
		q.ExpiresAt = &t
	}
	return q
}

func toAssessmentItem(a entities.FraudAssessment) assessmentItem {
	return assessmentItem{
		ID:        a.ID,
		Source:    string(a.Source),
		Action:    string(a.Action),
		Score:     a.Score,
		Flagged:   a.Flagged,
		Error:     a.Error,
		Block:     a.Thresholds.Block,
		Warn:      a.Thresholds.Warn,
		FailOpen:  a.Thresholds.FailOpen,
		Raw:       string(a.Raw),
		Actor:     a.Actor,
		Note:      a.Note,
		CheckedAt: formatTime(a.CheckedAt),
	}
}

func fromAssessmentItem(it assessmentItem) entities.FraudAssessment {
	a := entities.FraudAssessment{
		ID:      it.ID,
		Source:  entities.AssessmentSource(it.Source),
		Action:  entities.FraudAction(it.Action),
		Score:   it.Score,
		Flagged: it.Flagged,
		Error:   it.Error,
		Thresholds: entities.FraudThresholds{
			Block:    it.Block,
			Warn:     it.Warn,
			FailOpen: it.FailOpen,
		},
		Actor:     it.Actor,
		Note:      it.Note,
		CheckedAt: parseTime(it.CheckedAt),
	}
	if it.Raw != "" {
		a.Raw = json.RawMessage(it.Raw)
	}
	return a
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
