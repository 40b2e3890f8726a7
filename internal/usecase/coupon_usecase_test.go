package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"policy_checkout/internal/domain/entities"
	mock_interfaces "policy_checkout/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestCouponUseCase_Create_Validations(t *testing.T) {
	start := t0.Add(24 * time.Hour)
	end := t0

	cases := []struct {
		name   string
		coupon entities.Coupon
		code   string
	}{
		{"empty code", entities.Coupon{Code: "  "}, "invalid_coupon_code"},
		{"unknown type", entities.Coupon{Code: "X", DiscountType: "bogo", DiscountValue: decimal.NewFromInt(1)}, "invalid_discount_type"},
		{"percent over 100", entities.Coupon{Code: "X", DiscountType: entities.DiscountTypePercent, DiscountValue: decimal.NewFromInt(101)}, "invalid_discount"},
		{"zero value", entities.Coupon{Code: "X", DiscountType: entities.DiscountTypeFixed}, "invalid_discount"},
		{"negative min spend", entities.Coupon{Code: "X", DiscountType: entities.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(5), MinSpent: decimal.NewFromInt(-1), QuotaAvailable: 1}, "invalid_min_spent"},
		{"no quota", entities.Coupon{Code: "X", DiscountType: entities.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(5)}, "invalid_quota"},
		{"inverted window", entities.Coupon{Code: "X", DiscountType: entities.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(5), Unlimited: true, StartsAt: &start, ExpiresAt: &end}, "invalid_window"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewCouponUseCase(nil)
			_, err := uc.Create(context.Background(), tc.coupon)
			var ue *Error
			if !errors.As(err, &ue) || ue.Code != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestCouponUseCase_Create(t *testing.T) {
	valid := entities.Coupon{
		Code:           "Spring25",
		DiscountType:   entities.DiscountTypePercent,
		DiscountValue:  decimal.NewFromInt(25),
		QuotaAvailable: 100,
		UsedQuota:      7,
		Active:         true,
	}

	t.Run("stores with a fresh counter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICouponRepository(ctrl)
		uc := NewCouponUseCase(repo)
		uc.now = func() time.Time { return t0 }

		repo.EXPECT().FindByCode(gomock.Any(), "Spring25").Return([]entities.Coupon{{Code: "SPRING25"}}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c entities.Coupon) (entities.Coupon, error) {
			if c.UsedQuota != 0 || !c.CreatedAt.Equal(t0) {
				t.Fatalf("unexpected coupon %+v", c)
			}
			return c, nil
		})

		got, err := uc.Create(context.Background(), valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Code != "Spring25" {
			t.Fatalf("unexpected code %q", got.Code)
		}
	})

	t.Run("exact duplicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICouponRepository(ctrl)
		uc := NewCouponUseCase(repo)

		repo.EXPECT().FindByCode(gomock.Any(), "Spring25").Return([]entities.Coupon{{Code: "Spring25"}}, nil)

		if _, err := uc.Create(context.Background(), valid); !errors.Is(err, ErrCouponExists) {
			t.Fatalf("expected ErrCouponExists, got %v", err)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICouponRepository(ctrl)
		uc := NewCouponUseCase(repo)

		repo.EXPECT().FindByCode(gomock.Any(), gomock.Any()).Return(nil, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Coupon{}, errors.New("throttled"))

		_, err := uc.Create(context.Background(), valid)
		var ue *Error
		if !errors.As(err, &ue) || ue.Kind != KindInternal || ue.Message != "internal error" {
			t.Fatalf("expected generic internal error, got %v", err)
		}
	})
}
