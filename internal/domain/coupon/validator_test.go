package coupon

import (
	"errors"
	"testing"
	"time"

	"policy_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var now = time.Date(2026, time.May, 4, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func activeCoupon(code string) entities.Coupon {
	return entities.Coupon{
		Code:           code,
		Active:         true,
		DiscountType:   entities.DiscountTypePercent,
		DiscountValue:  dec("10"),
		QuotaAvailable: 10,
		MinSpent:       decimal.Zero,
	}
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected *Rejection, got %v", err)
	}
	return rej.Reason
}

func TestResolve_CaseSensitivity(t *testing.T) {
	upper := activeCoupon("ABC10")
	upper.CaseSensitive = true
	upper.DiscountValue = dec("20")
	lower := activeCoupon("abc10")
	candidates := []entities.Coupon{lower, upper}

	cases := []struct {
		input string
		want  string
	}{
		{"ABC10", "ABC10"},
		{"abc10", "abc10"},
		{"Abc10", "abc10"},
		{" ABC10 ", "ABC10"},
	}
	for _, tc := range cases {
		got, ok := Resolve(candidates, tc.input)
		if !ok || got.Code != tc.want {
			t.Fatalf("input %q: expected %s, got %+v (ok=%v)", tc.input, tc.want, got, ok)
		}
	}

	if _, ok := Resolve([]entities.Coupon{upper}, "abc10"); ok {
		t.Fatalf("case-sensitive coupon must not match a different casing")
	}
	if _, ok := Resolve(candidates, ""); ok {
		t.Fatalf("empty code must not resolve")
	}
}

func TestValidate_RejectionOrder(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name   string
		mutate func(c *entities.Coupon)
		total  string
		ctx    Context
		want   Reason
	}{
		{"inactive flag", func(c *entities.Coupon) { c.Active = false; c.ExpiresAt = &past }, "100", Context{}, ReasonInactive},
		{"not started yet", func(c *entities.Coupon) { c.StartsAt = &future }, "100", Context{}, ReasonInactive},
		{"expired beats quota", func(c *entities.Coupon) { c.ExpiresAt = &past; c.UsedQuota = 10 }, "100", Context{}, ReasonExpired},
		{"quota of one already used", func(c *entities.Coupon) {
			c.QuotaAvailable = 1
			c.UsedQuota = 1
			c.MinSpent = dec("1000")
			c.Matches.LastName = "Nobody"
		}, "100", Context{}, ReasonQuotaExhausted},
		{"min spend", func(c *entities.Coupon) { c.MinSpent = dec("50") }, "49.99", Context{}, ReasonMinSpend},
		{"last name", func(c *entities.Coupon) { c.Matches.LastName = "Smith" }, "100", Context{LastName: "Jones"}, ReasonLastName},
		{"date of birth prefix", func(c *entities.Coupon) { c.Matches.DateOfBirth = "1990-05" }, "100", Context{DateOfBirth: "1990-06-01"}, ReasonDateOfBirth},
		{"registration", func(c *entities.Coupon) { c.Matches.Registrations = "AB12CDE, XY99ZZZ" }, "100", Context{Registration: "AB12CDF"}, ReasonRegistration},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := activeCoupon("SPRING")
			tc.mutate(&c)
			err := Validate(c, dec(tc.total), tc.ctx, now)
			if got := reasonOf(t, err); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	expires := now
	c := activeCoupon("SPRING")
	c.MinSpent = dec("50")
	c.ExpiresAt = &expires
	c.Unlimited = true
	c.UsedQuota = 5000
	c.Matches = entities.CouponMatches{
		LastName:      "smith",
		DateOfBirth:   "1990",
		Registrations: "ab12 cde,XY99ZZZ",
	}

	err := Validate(c, dec("50.00"), Context{LastName: "SMITH", DateOfBirth: "1990-02-14", Registration: "AB 12 CDE"}, now)
	if err != nil {
		t.Fatalf("expected coupon to be accepted, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	if _, err := Check(nil, "MISSING", dec("10"), Context{}, now); reasonOf(t, err) != ReasonNotFound {
		t.Fatalf("expected not found")
	}

	c, err := Check([]entities.Coupon{activeCoupon("save5")}, "SAVE5", dec("10"), Context{}, now)
	if err != nil || c.Code != "save5" {
		t.Fatalf("expected save5, got %+v err=%v", c, err)
	}
}

func TestApply(t *testing.T) {
	minimum := dec("8.50")

	percent := activeCoupon("P10")
	discount, total := Apply(percent, dec("59.17"), minimum)
	if !discount.Equal(dec("5.92")) || !total.Equal(dec("53.25")) {
		t.Fatalf("unexpected percent result: %s %s", discount, total)
	}

	fixed := activeCoupon("F20")
	fixed.DiscountType = entities.DiscountTypeFixed
	fixed.DiscountValue = dec("20")
	discount, total = Apply(fixed, dec("25"), minimum)
	if !discount.Equal(dec("16.5")) || !total.Equal(minimum) {
		t.Fatalf("expected floor at minimum, got %s %s", discount, total)
	}
}

func TestRejectionMessage(t *testing.T) {
	rej := &Rejection{Code: "X", Reason: ReasonMinSpend}
	if rej.Message() != "Order total is below the coupon minimum spend" {
		t.Fatalf("unexpected message: %s", rej.Message())
	}
}
