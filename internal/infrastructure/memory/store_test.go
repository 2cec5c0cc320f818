package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/memory"
)

func seedItem(t *testing.T, store *memory.Store, name string, qty int) *entity.InventoryItem {
	t.Helper()
	it := &entity.InventoryItem{
		Name: name, Category: "Sensors", Location: "A1", Quantity: qty,
		ReorderThreshold: 2, Price: decimal.NewFromInt(3), CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, store.Items().Create(context.Background(), it))
	return it
}

func TestTxRunner_RollbackConservaEscriturasConcurrentes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	arduino := seedItem(t, store, "Arduino Uno", 10)
	outside := &entity.Transaction{ItemID: arduino.ID, ItemName: arduino.Name, Direction: "in", Quantity: 1, User: "Ana", Timestamp: time.Now()}
	require.NoError(t, store.Transactions().Create(ctx, outside))

	var esp32 *entity.InventoryItem
	var insertedID string
	boom := errors.New("boom")
	err := store.TxRunner().Run(ctx, func(items repository.ItemRepository, txs repository.TransactionRepository) error {
		// escritura de otra petición mientras la transacción sigue abierta
		esp32 = seedItem(t, store, "ESP32", 4)

		updated, err := items.AdjustQuantity(ctx, arduino.ID, -1)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, 9, updated.Quantity)

		tx := &entity.Transaction{ItemID: arduino.ID, ItemName: arduino.Name, Direction: "out", Quantity: 1, User: "Ana", Timestamp: time.Now()}
		require.NoError(t, txs.Create(ctx, tx))
		insertedID = tx.ID
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Items().GetByID(ctx, esp32.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "el ítem creado fuera de la transacción debe sobrevivir al rollback")
	assert.Equal(t, 4, got.Quantity)

	got, err = store.Items().GetByID(ctx, arduino.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 10, got.Quantity)

	recent, err := store.Transactions().ListRecent(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, outside.ID, recent[0].ID)
	assert.NotEqual(t, insertedID, recent[0].ID)
}

func TestTxRunner_RollbackDeshaceAltaYBaja(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	victim := seedItem(t, store, "Servo SG90", 3)

	var createdID string
	err := store.TxRunner().Run(ctx, func(items repository.ItemRepository, _ repository.TransactionRepository) error {
		it := &entity.InventoryItem{Name: "Relay", Quantity: 1}
		require.NoError(t, items.Create(ctx, it))
		createdID = it.ID
		require.NoError(t, items.Delete(ctx, victim.ID))
		return errors.New("abort")
	})
	require.Error(t, err)

	got, err := store.Items().GetByID(ctx, createdID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Items().GetByID(ctx, victim.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Quantity)
}

func TestTxRunner_CommitConservaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	it := seedItem(t, store, "LM7805", 5)

	err := store.TxRunner().Run(ctx, func(items repository.ItemRepository, txs repository.TransactionRepository) error {
		if _, err := items.AdjustQuantity(ctx, it.ID, 2); err != nil {
			return err
		}
		return txs.Create(ctx, &entity.Transaction{ItemID: it.ID, ItemName: it.Name, Direction: "in", Quantity: 2, User: "Ana", Timestamp: time.Now()})
	})
	require.NoError(t, err)

	got, err := store.Items().GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
	n, err := store.Transactions().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAdjustQuantity_NoBajaDeCero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	it := seedItem(t, store, "Buzzer", 1)

	got, err := store.Items().AdjustQuantity(ctx, it.ID, -2)
	require.NoError(t, err)
	assert.Nil(t, got)

	cur, err := store.Items().GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cur.Quantity)
}
