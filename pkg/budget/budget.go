package budget

import (
	"errors"
	"strings"

	"github.com/pennywise/pennywise/internal/money"
)

var (
	ErrEmptyCategory = errors.New("budget category must not be empty")
	ErrInvalidLimit  = errors.New("budget limit must be positive")
)

// Budget is a per-category spending limit with a running total. Spent is
// advanced imperatively when an expense is recorded against the category; it
// is not recomputed from the transaction log, so edits and deletes of past
// transactions do not adjust it.
type Budget struct {
	Category string      `json:"category"`
	Limit    money.Money `json:"limit"`
	Spent    money.Money `json:"spent"`
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if err := b.Limit.Validate(); err != nil {
		return ErrInvalidLimit
	}
	return nil
}

// Remaining can go negative once the category is overspent.
func (b Budget) Remaining() money.Money {
	return money.FromCents(b.Limit.Cents - b.Spent.Cents)
}
