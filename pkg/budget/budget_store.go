package budget

import (
	"context"

	"github.com/pennywise/pennywise/internal/money"
	"github.com/pennywise/pennywise/internal/storage"
	log "github.com/sirupsen/logrus"
)

const storageKey = "pennywise.budgets"

type BudgetStore interface {
	List(ctx context.Context) []Budget
	// Set upserts the budget for its category, preserving the running
	// Spent total when the budget already exists.
	Set(ctx context.Context, b Budget) bool
	Remove(ctx context.Context, category string) bool
	// RecordSpend advances the running total of the category's budget. A
	// category without a budget is a no-op.
	RecordSpend(ctx context.Context, category string, amount money.Money) bool
}

type BudgetStoreImpl struct {
	store storage.Store
}

func NewBudgetStore(store storage.Store) *BudgetStoreImpl {
	return &BudgetStoreImpl{store: store}
}

func (s *BudgetStoreImpl) List(ctx context.Context) []Budget {
	return storage.ReadJSON[Budget](ctx, s.store, storageKey)
}

func (s *BudgetStoreImpl) Set(ctx context.Context, b Budget) bool {
	if !s.store.IsAvailable(ctx) {
		log.Warn("storage unavailable, budget not saved")
		return false
	}
	budgets := s.List(ctx)
	replaced := false
	for i := range budgets {
		if budgets[i].Category == b.Category {
			b.Spent = budgets[i].Spent
			budgets[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		budgets = append(budgets, b)
	}
	return storage.WriteJSON(ctx, s.store, storageKey, budgets)
}

func (s *BudgetStoreImpl) Remove(ctx context.Context, category string) bool {
	budgets := s.List(ctx)
	remaining := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		if b.Category != category {
			remaining = append(remaining, b)
		}
	}
	return storage.WriteJSON(ctx, s.store, storageKey, remaining)
}

func (s *BudgetStoreImpl) RecordSpend(ctx context.Context, category string, amount money.Money) bool {
	budgets := s.List(ctx)
	for i := range budgets {
		if budgets[i].Category == category {
			budgets[i].Spent = budgets[i].Spent.Add(amount)
			return storage.WriteJSON(ctx, s.store, storageKey, budgets)
		}
	}
	return true
}
