package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

func TestCalculateInterestRate_Steps(t *testing.T) {
	cases := map[int]string{
		1: "3.5", 2: "3.5", 3: "4", 5: "4", 6: "5", 11: "5", 12: "5.5", 23: "5.5",
		24: "6", 35: "6", 36: "6.25", 59: "6.25", 60: "6.5", 120: "6.5",
	}
	for months, want := range cases {
		if got := CalculateInterestRate(months); !got.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("months=%d: expected %s got %s", months, want, got)
		}
	}
}

func TestMaturityValue_IsPure(t *testing.T) {
	balance := decimal.NewFromInt(10000)
	rate := decimal.RequireFromString("6.0")

	first := MaturityValue(balance, rate, 24)
	second := MaturityValue(balance, rate, 24)
	if !first.Equal(second) {
		t.Fatalf("expected identical results, got %s and %s", first, second)
	}
	if got := first.StringFixed(2); got != "11200.00" {
		t.Fatalf("expected 11200.00 got %s", got)
	}
	if !balance.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("balance mutated: %s", balance)
	}
}

func TestMaturityDate_AddsCalendarMonths(t *testing.T) {
	start := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	if got := MaturityDate(start, 6); !got.Equal(time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected maturity date %s", got)
	}
}

func TestMaskAccountNumber(t *testing.T) {
	cases := map[string]string{
		"":           "****",
		"12":         "12",
		"1234":       "1234",
		"12345":      "12*45",
		"1234567890": "12******90",
	}
	for in, want := range cases {
		if got := MaskAccountNumber(in); got != want {
			t.Fatalf("mask(%q): expected %q got %q", in, want, got)
		}
	}
}

func TestAccountStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct{ from, to AccountStatus }{
		{AccountStatusActive, AccountStatusSuspended},
		{AccountStatusActive, AccountStatusClosed},
		{AccountStatusSuspended, AccountStatusActive},
		{AccountStatusSuspended, AccountStatusClosed},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}
	denied := []struct{ from, to AccountStatus }{
		{AccountStatusActive, AccountStatusActive},
		{AccountStatusClosed, AccountStatusActive},
		{AccountStatusClosed, AccountStatusSuspended},
	}
	for _, tc := range denied {
		if tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestNewAccountView_MaturityOnlyForFixedDeposits(t *testing.T) {
	savings := &Account{Type: AccountTypeSavings, Balance: decimal.NewFromInt(1000)}
	if v := NewAccountView(savings); v.MaturityValue != nil {
		t.Fatalf("savings account must not carry a maturity value")
	}

	fd := &Account{
		Type:         AccountTypeFixedDeposit,
		Balance:      decimal.NewFromInt(1000),
		Tenure:       null.IntFrom(6),
		InterestRate: decimal.NewNullDecimal(decimal.RequireFromString("5.0")),
	}
	v := NewAccountView(fd)
	if v.MaturityValue == nil || v.MaturityValue.StringFixed(2) != "1025.00" {
		t.Fatalf("unexpected maturity value %v", v.MaturityValue)
	}
}
