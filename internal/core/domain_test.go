package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseItemType(t *testing.T) {
	cases := []struct {
		in   string
		want ItemType
	}{
		{"", Utility},
		{"  ", Utility},
		{"Liquid", Liquid},
		{" SOLID ", Solid},
		{"fixed", Fixed},
		{"gadget", ItemType("gadget")},
	}
	for _, tc := range cases {
		if got := ParseItemType(tc.in); got != tc.want {
			t.Fatalf("ParseItemType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestItemTypeUnitAndFlags(t *testing.T) {
	tests := []struct {
		typ             ItemType
		unit            string
		fixed, optional bool
	}{
		{Liquid, "L", false, false},
		{Solid, "kg", false, true},
		{Utility, "units", false, true},
		{Fixed, "fixed", true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if !tt.typ.Valid() {
				t.Fatalf("%q should be valid", tt.typ)
			}
			if got := tt.typ.Unit(); got != tt.unit {
				t.Errorf("Unit() = %q, want %q", got, tt.unit)
			}
			if got := tt.typ.IsFixed(); got != tt.fixed {
				t.Errorf("IsFixed() = %v, want %v", got, tt.fixed)
			}
			if got := tt.typ.QuantityOptional(); got != tt.optional {
				t.Errorf("QuantityOptional() = %v, want %v", got, tt.optional)
			}
		})
	}
	if ItemType("gadget").Valid() {
		t.Fatal("unknown type should not be valid")
	}
}

func TestExpenseLineTotal(t *testing.T) {
	e := Expense{Quantity: 3, UnitPrice: 0.335}
	if got := e.LineTotal(); !got.Equal(decimal.RequireFromString("1.01")) {
		t.Fatalf("LineTotal = %s, want 1.01", got)
	}
	if got := e.Amount(); !got.Equal(decimal.RequireFromString("1.005")) {
		t.Fatalf("Amount = %s, want 1.005", got)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{EntryDate: "2025-10-05", ItemName: "Milk", ItemType: Liquid, Quantity: 2, UnitPrice: 1.5}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		e    Expense
		want error
	}{
		{Expense{EntryDate: "2025-10-05", ItemName: " ", ItemType: Solid}, ErrEmptyItemName},
		{Expense{EntryDate: "2025-10-05", ItemName: "x", ItemType: "gadget"}, ErrInvalidItemType},
		{Expense{EntryDate: "2025-10-05", ItemName: "x", ItemType: Solid, Quantity: -1}, ErrNegativeAmount},
		{Expense{EntryDate: "2025-10-05", ItemName: "x", ItemType: Solid, UnitPrice: -0.01}, ErrNegativeAmount},
		{Expense{EntryDate: "05/10/2025", ItemName: "x", ItemType: Solid}, ErrInvalidDateFormat},
	}
	for i, tc := range bads {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestIsClientError(t *testing.T) {
	for _, err := range []error{
		ErrQuantityRequired,
		fmt.Errorf("add expense: %w", ErrNegativeAmount),
		&InvalidDateError{Value: "nope"},
		ErrInvalidItemType,
	} {
		if !IsClientError(err) {
			t.Fatalf("%v should be a client error", err)
		}
	}
	if IsClientError(errors.New("disk full")) {
		t.Fatal("generic error should not be a client error")
	}
}
