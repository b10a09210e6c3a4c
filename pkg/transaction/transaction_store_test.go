package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/pennywise/pennywise/internal/money"
	"github.com/pennywise/pennywise/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransaction(id string) Transaction {
	return Transaction{
		ID:          id,
		Type:        Expense,
		Amount:      money.FromCents(5000),
		Category:    "Food",
		Date:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Description: "groceries",
	}
}

func TestTransactionStore_AddAndList(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionStore(storage.NewMemoryStore())

	tx := sampleTransaction("t-1")
	require.True(t, store.Add(ctx, tx))

	listed := store.List(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, tx, listed[0])
}

func TestTransactionStore_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionStore(storage.NewMemoryStore())

	require.True(t, store.Add(ctx, sampleTransaction("t-1")))
	require.True(t, store.Add(ctx, sampleTransaction("t-2")))
	require.True(t, store.Add(ctx, sampleTransaction("t-3")))

	listed := store.List(ctx)
	require.Len(t, listed, 3)
	assert.Equal(t, "t-1", listed[0].ID)
	assert.Equal(t, "t-2", listed[1].ID)
	assert.Equal(t, "t-3", listed[2].ID)
}

func TestTransactionStore_AddFailsWhenStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	store := NewTransactionStore(mem)

	mem.Break(true)
	assert.False(t, store.Add(ctx, sampleTransaction("t-1")))

	mem.Break(false)
	assert.Empty(t, store.List(ctx))
}

func TestTransactionStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionStore(storage.NewMemoryStore())

	tx := sampleTransaction("t-1")
	require.True(t, store.Add(ctx, tx))

	tx.Amount = money.FromCents(7500)
	tx.Description = "more groceries"
	require.True(t, store.Update(ctx, tx))

	listed := store.List(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, tx, listed[0])
}

func TestTransactionStore_UpdateMissingIdIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionStore(storage.NewMemoryStore())

	existing := sampleTransaction("t-1")
	require.True(t, store.Add(ctx, existing))

	assert.True(t, store.Update(ctx, sampleTransaction("t-unknown")))

	listed := store.List(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, existing, listed[0])
}

func TestTransactionStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionStore(storage.NewMemoryStore())

	require.True(t, store.Add(ctx, sampleTransaction("t-1")))
	require.True(t, store.Add(ctx, sampleTransaction("t-2")))

	require.True(t, store.Remove(ctx, "t-1"))

	listed := store.List(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, "t-2", listed[0].ID)

	// removing again is idempotent
	require.True(t, store.Remove(ctx, "t-1"))
	assert.Len(t, store.List(ctx), 1)
}

func TestTransactionStore_MalformedBlobDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	store := NewTransactionStore(mem)

	require.True(t, mem.Set(ctx, storageKey, "corrupted{"))
	assert.Empty(t, store.List(ctx))

	// a fresh add starts over from the empty collection
	require.True(t, store.Add(ctx, sampleTransaction("t-1")))
	assert.Len(t, store.List(ctx), 1)
}
