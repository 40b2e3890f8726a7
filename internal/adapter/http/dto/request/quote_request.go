package request

import (
	"strings"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase"

	"github.com/shopspring/decimal"
)

type AddressRequest struct {
	Line1    string `json:"line1" binding:"required"`
	Line2    string `json:"line2"`
	City     string `json:"city" binding:"required"`
	Postcode string `json:"postcode" binding:"required"`
	Country  string `json:"country"`
}

type CustomerRequest struct {
	FirstName   string         `json:"first_name" binding:"required"`
	LastName    string         `json:"last_name" binding:"required"`
	Email       string         `json:"email" binding:"required,email"`
	Phone       string         `json:"phone"`
	DateOfBirth string         `json:"date_of_birth" binding:"required"`
	Address     AddressRequest `json:"address" binding:"required"`
}

type VehicleRequest struct {
	Registration string `json:"registration" binding:"required"`
	Make         string `json:"make"`
	Model        string `json:"model"`
}

// CreateQuoteRequest is the payload for pricing a new quote.
type CreateQuoteRequest struct {
	Customer      CustomerRequest `json:"customer" binding:"required"`
	Vehicle       VehicleRequest  `json:"vehicle" binding:"required"`
	Duration      int             `json:"duration" binding:"required,min=1"`
	Unit          string          `json:"unit" binding:"required,oneof=hours days weeks"`
	LicenseHeld   string          `json:"license_held" binding:"required"`
	StartsAt      *time.Time      `json:"starts_at"`
	CouponCode    string          `json:"coupon_code"`
	PaymentMethod string          `json:"payment_method"`
}

func (r CreateQuoteRequest) ToCommand() usecase.CreateQuoteCommand {
	country := strings.TrimSpace(r.Customer.Address.Country)
	if country == "" {
		country = "GB"
	}
	return usecase.CreateQuoteCommand{
		Customer: entities.Customer{
			FirstName:   r.Customer.FirstName,
			LastName:    r.Customer.LastName,
			Email:       r.Customer.Email,
			Phone:       strings.TrimSpace(r.Customer.Phone),
			DateOfBirth: r.Customer.DateOfBirth,
			Address: entities.Address{
				Line1:    strings.TrimSpace(r.Customer.Address.Line1),
				Line2:    strings.TrimSpace(r.Customer.Address.Line2),
				City:     strings.TrimSpace(r.Customer.Address.City),
				Postcode: strings.ToUpper(strings.TrimSpace(r.Customer.Address.Postcode)),
				Country:  strings.ToUpper(country),
			},
		},
		Vehicle: entities.Vehicle{
			Registration: r.Vehicle.Registration,
			Make:         strings.TrimSpace(r.Vehicle.Make),
			Model:        strings.TrimSpace(r.Vehicle.Model),
		},
		Duration:      r.Duration,
		Unit:          entities.DurationUnit(r.Unit),
		LicenseHeld:   r.LicenseHeld,
		StartsAt:      r.StartsAt,
		CouponCode:    r.CouponCode,
		PaymentMethod: entities.PaymentMethod(strings.ToLower(strings.TrimSpace(r.PaymentMethod))),
	}
}

// CheckoutRequest carries the payment token for token-style gateways; it is
// empty for redirect and intent gateways.
type CheckoutRequest struct {
	PaymentToken string `json:"payment_token"`
}

type PreviewCouponRequest struct {
	Code         string          `json:"code" binding:"required"`
	Total        decimal.Decimal `json:"total"`
	LastName     string          `json:"last_name"`
	DateOfBirth  string          `json:"date_of_birth"`
	Registration string          `json:"registration"`
}

func (r PreviewCouponRequest) ToCommand() usecase.PreviewCouponCommand {
	return usecase.PreviewCouponCommand{
		Code:         r.Code,
		Total:        r.Total,
		LastName:     r.LastName,
		DateOfBirth:  r.DateOfBirth,
		Registration: r.Registration,
	}
}
