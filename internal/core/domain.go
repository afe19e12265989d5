package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Liquid  ItemType = "liquid"
	Solid   ItemType = "solid"
	Utility ItemType = "utility"
	Fixed   ItemType = "fixed"
)

// DefaultItemType is used when a form omits the category.
const DefaultItemType = Utility

type (
	ItemType string

	// Expense is a single dated line item.
	Expense struct {
		ID        int64
		EntryDate string // YYYY-MM-DD
		ItemName  string
		ItemType  ItemType
		Quantity  float64
		UnitPrice float64
		CreatedAt time.Time
	}
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrQuantityRequired  = errors.New("quantity is required")
	ErrNegativeAmount    = errors.New("quantity and unit_price must be non-negative")
	ErrInvalidItemType   = errors.New("item_type must be one of liquid, solid, utility, fixed")
	ErrEmptyItemName     = errors.New("item_name is required")
	ErrUnitPriceRequired = errors.New("unit_price is required")
	ErrInvalidNumber     = errors.New("quantity and unit_price must be numbers")
)

// ItemTypes lists the accepted categories in display order.
func ItemTypes() []ItemType {
	return []ItemType{Liquid, Solid, Utility, Fixed}
}

// ParseItemType lowercases and trims raw. Empty input yields DefaultItemType.
// The result is not validated; call Valid for that.
func ParseItemType(raw string) ItemType {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return DefaultItemType
	}
	return ItemType(t)
}

func (t ItemType) Valid() bool {
	switch t {
	case Liquid, Solid, Utility, Fixed:
		return true
	default:
		return false
	}
}

// Unit returns the display unit for the category.
func (t ItemType) Unit() string {
	switch t {
	case Liquid:
		return "L"
	case Solid:
		return "kg"
	case Utility:
		return "units"
	default:
		return "fixed"
	}
}

// IsFixed reports whether the item is a recurring fixed cost.
func (t ItemType) IsFixed() bool {
	return t == Fixed
}

// QuantityOptional reports whether a missing quantity may default to 1.
func (t ItemType) QuantityOptional() bool {
	switch t {
	case Fixed, Utility, Solid:
		return true
	default:
		return false
	}
}

func (t ItemType) String() string {
	return string(t)
}

// Amount returns the unrounded quantity × unit_price.
func (e Expense) Amount() decimal.Decimal {
	return decimal.NewFromFloat(e.Quantity).Mul(decimal.NewFromFloat(e.UnitPrice))
}

// LineTotal returns the line amount rounded to 2 decimals.
func (e Expense) LineTotal() decimal.Decimal {
	return Round2(e.Amount())
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ItemName) == "" {
		return ErrEmptyItemName
	}
	if !e.ItemType.Valid() {
		return ErrInvalidItemType
	}
	if e.Quantity < 0 || e.UnitPrice < 0 {
		return ErrNegativeAmount
	}
	if _, err := ParseCanonicalDate(e.EntryDate); err != nil {
		return err
	}
	return nil
}

// IsClientError reports whether err was caused by bad user input.
func IsClientError(err error) bool {
	for _, target := range []error{
		ErrInvalidDateFormat,
		ErrQuantityRequired,
		ErrNegativeAmount,
		ErrInvalidItemType,
		ErrEmptyItemName,
		ErrUnitPriceRequired,
		ErrInvalidNumber,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
