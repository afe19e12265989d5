package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		out     float64
		present bool
		ok      bool
	}{
		{"1", 1, true, true},
		{"1.5", 1.5, true, true},
		{"1,25", 1.25, true, true},
		{" 2.50 ", 2.5, true, true},
		{"0", 0, true, true},
		{"-1", -1, true, true}, // sign is checked by validation, not parsing
		{"", 0, false, true},
		{"   ", 0, false, true},
		{"abc", 0, true, false},
		{"1.2.3", 0, true, false},
		{"NaN", 0, true, false},
		{"Inf", 0, true, false},
	}
	for _, tc := range cases {
		got, present, err := ParseAmount(tc.in)
		if present != tc.present {
			t.Fatalf("%q present=%v, want %v", tc.in, present, tc.present)
		}
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else if !errors.Is(err, ErrInvalidNumber) {
			t.Fatalf("%q expected ErrInvalidNumber, got %v", tc.in, err)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{3.0, "3"},
		{2.675, "2.68"},
		{1.004, "1"},
		{1.005, "1.01"},
		{0.1 + 0.2, "0.3"},
	}
	for _, tc := range cases {
		got := Round2(decimal.NewFromFloat(tc.in))
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("Round2(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestSum(t *testing.T) {
	items := []Expense{
		{Quantity: 2, UnitPrice: 1.5},
		{Quantity: 1, UnitPrice: 0.1},
		{Quantity: 1, UnitPrice: 0.2},
	}
	if got := Sum(items); !got.Equal(decimal.RequireFromString("3.3")) {
		t.Fatalf("Sum = %s, want 3.3", got)
	}
	if got := Sum(nil); !got.IsZero() {
		t.Fatalf("Sum(nil) = %s, want 0", got)
	}
}

func TestFormatPlain(t *testing.T) {
	cases := map[float64]string{
		2:      "2.0",
		1.5:    "1.5",
		0:      "0.0",
		500:    "500.0",
		12.345: "12.345",
	}
	for in, want := range cases {
		if got := FormatPlain(in); got != want {
			t.Fatalf("FormatPlain(%v) = %q, want %q", in, got, want)
		}
	}
}
