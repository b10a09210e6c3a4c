package transaction

import (
	"context"

	"github.com/pennywise/pennywise/internal/storage"
	log "github.com/sirupsen/logrus"
)

const storageKey = "pennywise.transactions"

// TransactionStore persists the transaction collection as one blob. Every
// mutation reads the full collection, changes it in memory, and writes it
// back; the order of List is the persisted insertion order.
type TransactionStore interface {
	List(ctx context.Context) []Transaction
	Add(ctx context.Context, t Transaction) bool
	Update(ctx context.Context, t Transaction) bool
	Remove(ctx context.Context, id string) bool
}

type TransactionStoreImpl struct {
	store storage.Store
}

func NewTransactionStore(store storage.Store) *TransactionStoreImpl {
	return &TransactionStoreImpl{store: store}
}

func (s *TransactionStoreImpl) List(ctx context.Context) []Transaction {
	return storage.ReadJSON[Transaction](ctx, s.store, storageKey)
}

// Add appends the transaction. It fails silently when the storage reports
// unavailable. Duplicate ids are not checked here; id uniqueness comes from
// the service's uuid generation.
func (s *TransactionStoreImpl) Add(ctx context.Context, t Transaction) bool {
	if !s.store.IsAvailable(ctx) {
		log.Warn("storage unavailable, transaction not saved")
		return false
	}
	transactions := s.List(ctx)
	return storage.WriteJSON(ctx, s.store, storageKey, append(transactions, t))
}

// Update replaces the record with a matching id. A missing id is a silent
// no-op; the return value is the write result either way.
func (s *TransactionStoreImpl) Update(ctx context.Context, t Transaction) bool {
	transactions := s.List(ctx)
	for i := range transactions {
		if transactions[i].ID == t.ID {
			transactions[i] = t
			break
		}
	}
	return storage.WriteJSON(ctx, s.store, storageKey, transactions)
}

// Remove filters the id out and rewrites. Removing an absent id is a no-op,
// not an error.
func (s *TransactionStoreImpl) Remove(ctx context.Context, id string) bool {
	transactions := s.List(ctx)
	remaining := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.ID != id {
			remaining = append(remaining, t)
		}
	}
	return storage.WriteJSON(ctx, s.store, storageKey, remaining)
}
