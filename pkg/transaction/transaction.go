package transaction

import (
	"errors"
	"strings"
	"time"

	"github.com/pennywise/pennywise/internal/money"
)

// Type distinguishes income from expense records.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

func (t Type) Valid() bool {
	return t == Income || t == Expense
}

var (
	ErrInvalidType   = errors.New("transaction type must be income or expense")
	ErrEmptyCategory = errors.New("transaction category must not be empty")
)

// Transaction is a single income or expense record. The ID is assigned once
// at creation and never changes; the type is treated as immutable by
// convention because every edit rewrites the whole record.
type Transaction struct {
	ID          string      `json:"id"`
	Type        Type        `json:"type"`
	Amount      money.Money `json:"amount"`
	Category    string      `json:"category"`
	Date        time.Time   `json:"date"`
	Description string      `json:"description,omitempty"`
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
