package budget

import (
	"context"
	"fmt"

	"github.com/pennywise/pennywise/internal/event_bus"
	"github.com/pennywise/pennywise/internal/storage"
	"github.com/pennywise/pennywise/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

type BudgetService interface {
	List(ctx context.Context) []Budget
	Set(ctx context.Context, b Budget) (Budget, error)
	Delete(ctx context.Context, category string) bool
}

type BudgetServiceImpl struct {
	store BudgetStore
}

// NewBudgetService wires the service to the bus: every recorded expense
// advances the running total of its category's budget, if one exists.
func NewBudgetService(store BudgetStore, bus *event_bus.EventBus) *BudgetServiceImpl {
	service := &BudgetServiceImpl{store: store}
	event_bus.SubscribeTyped(bus, event_bus.TransactionRecorded,
		func(e event_bus.EventT[event_bus.TransactionRecordedPayload]) error {
			return service.onTransactionRecorded(e)
		})
	return service
}

func (s *BudgetServiceImpl) List(ctx context.Context) []Budget {
	return s.store.List(ctx)
}

// Set validates and upserts the budget for its category. Spent is managed by
// the store and cannot be set from outside.
func (s *BudgetServiceImpl) Set(ctx context.Context, b Budget) (Budget, error) {
	if err := b.Validate(); err != nil {
		return Budget{}, err
	}
	if !s.store.Set(ctx, b) {
		return Budget{}, fmt.Errorf("set budget for %s: %w", b.Category, storage.ErrUnavailable)
	}
	for _, saved := range s.store.List(ctx) {
		if saved.Category == b.Category {
			return saved, nil
		}
	}
	return b, nil
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, category string) bool {
	return s.store.Remove(ctx, category)
}

func (s *BudgetServiceImpl) onTransactionRecorded(e event_bus.EventT[event_bus.TransactionRecordedPayload]) error {
	if e.Data.Type != string(transaction.Expense) {
		return nil
	}
	if !s.store.RecordSpend(e.Context(), e.Data.Category, e.Data.Amount) {
		return fmt.Errorf("record spend for %s: %w", e.Data.Category, storage.ErrUnavailable)
	}
	log.Debugf("recorded spend of %s against budget %q", e.Data.Amount, e.Data.Category)
	return nil
}
