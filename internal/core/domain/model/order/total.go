package order

import (
	"fmt"

	"deliveryhub/internal/core/domain/model/kernel"
)

// ParseTotal reads an order total such as "25.00". Any rejection, whether negative,
// finer than a cent or too large to store, matches ErrTotalIsInvalid; the underlying
// kernel error stays reachable through errors.Is.
func ParseTotal(s string) (kernel.Money, error) {
	total, err := kernel.MoneyFromString(s)
	if err != nil {
		return kernel.Money{}, fmt.Errorf("%w: %w", ErrTotalIsInvalid, err)
	}
	return total, nil
}
