package transaction

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise/internal/event_bus"
	"github.com/pennywise/pennywise/internal/storage"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/preferences"
	log "github.com/sirupsen/logrus"
)

type TransactionService interface {
	List(ctx context.Context) []Transaction
	Record(ctx context.Context, t Transaction) (Transaction, error)
	Update(ctx context.Context, t Transaction) (bool, error)
	Delete(ctx context.Context, id string) bool
}

type TransactionServiceImpl struct {
	store TransactionStore
	prefs preferences.PreferenceStore
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewTransactionService(
	store TransactionStore,
	prefs preferences.PreferenceStore,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *TransactionServiceImpl {
	return &TransactionServiceImpl{store: store, prefs: prefs, bus: bus, clock: clock}
}

func (s *TransactionServiceImpl) List(ctx context.Context) []Transaction {
	return s.store.List(ctx)
}

// Record validates and persists a new transaction. The id is generated here,
// an unknown or empty category falls back to the reserved one, and a zero
// date means "now". A recorded event is published so budget tracking can
// advance its running totals.
func (s *TransactionServiceImpl) Record(ctx context.Context, t Transaction) (Transaction, error) {
	t.ID = uuid.NewString()
	t.Category = s.resolveCategory(ctx, t.Category)
	if t.Date.IsZero() {
		t.Date = s.clock.Now()
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}

	if !s.store.Add(ctx, t) {
		return Transaction{}, storage.ErrUnavailable
	}

	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionRecorded, event_bus.TransactionRecordedPayload{
		ID:       t.ID,
		Type:     string(t.Type),
		Category: t.Category,
		Amount:   t.Amount,
	}))
	if err != nil {
		log.Warnf("transaction %s saved but a recorded-event handler failed: %v", t.ID, err)
	}

	return t, nil
}

// Update replaces the stored record wholesale. A non-existent id leaves the
// store unchanged and is not reported as an error.
func (s *TransactionServiceImpl) Update(ctx context.Context, t Transaction) (bool, error) {
	t.Category = s.resolveCategory(ctx, t.Category)
	if err := t.Validate(); err != nil {
		return false, err
	}
	if !s.store.Update(ctx, t) {
		return false, fmt.Errorf("update transaction %s: %w", t.ID, storage.ErrUnavailable)
	}
	return true, nil
}

func (s *TransactionServiceImpl) Delete(ctx context.Context, id string) bool {
	return s.store.Remove(ctx, id)
}

// resolveCategory falls back to the reserved category when the label is
// blank or not part of the configured set.
func (s *TransactionServiceImpl) resolveCategory(ctx context.Context, category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return preferences.FallbackCategory
	}
	if !slices.Contains(s.prefs.Categories(ctx), category) {
		log.Debugf("unknown category %q, falling back to %q", category, preferences.FallbackCategory)
		return preferences.FallbackCategory
	}
	return category
}
