package kernel

import (
	"fmt"

	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits an amount may carry.
const moneyScale = 2

// MaxMoney is the largest storable amount (numeric(12,2)).
var MaxMoney = decimal.RequireFromString("9999999999.99")

var (
	// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney or MoneyFromString")
	// ErrMoneyIsNegative is returned for amounts below zero.
	ErrMoneyIsNegative = errs.NewValueIsInvalidError("amount must not be negative")
)

// Money is a non-negative amount in cents, at most MaxMoney. The service never
// recomputes amounts; it only carries the value supplied at order creation.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney wraps a decimal amount. Amounts with non-zero digits past the cent are
// rejected rather than rounded.
//
// Example:
//
//	m, err := kernel.NewMoney(decimal.RequireFromString("25.00"))
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	if !amount.Equal(amount.Truncate(moneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than %d decimal places", amount.String(), moneyScale))
	}
	if amount.GreaterThan(MaxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, MaxMoney.StringFixed(moneyScale))
	}
	return Money{
		amount: amount.Truncate(moneyScale),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// MoneyFromString parses amounts such as "25.00" or "3".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// Decimal exposes the amount for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
