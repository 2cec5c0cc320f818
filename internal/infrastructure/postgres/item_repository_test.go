package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/postgres"
)

var itemCols = []string{"id", "name", "category", "location", "quantity", "min_stock", "price", "created_at", "updated_at"}

// la guarda de stock debe ir en el mismo UPDATE, no en un SELECT previo
var adjustSQL = regexp.QuoteMeta(`UPDATE inventory SET quantity = quantity + $2, updated_at = now()`) +
	`\s+` + regexp.QuoteMeta(`WHERE id = $1 AND quantity + $2 >= 0`) +
	`\s+RETURNING id`

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestAdjustQuantity_UpdateCondicional(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewItemRepository(mock)
	now := time.Now()

	mock.ExpectQuery(adjustSQL).
		WithArgs("item-1", -3).
		WillReturnRows(pgxmock.NewRows(itemCols).
			AddRow("item-1", "Arduino Uno", "Microcontrollers", "A1", 7, 5, "25.50", now, now))

	item, err := repo.AdjustQuantity(context.Background(), "item-1", -3)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 7, item.Quantity)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("25.50")))
}

func TestAdjustQuantity_GuardaSinFilasEsNil(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewItemRepository(mock)

	// ítem inexistente o stock insuficiente: el UPDATE no devuelve filas
	mock.ExpectQuery(adjustSQL).
		WithArgs("item-1", -30).
		WillReturnRows(pgxmock.NewRows(itemCols))

	item, err := repo.AdjustQuantity(context.Background(), "item-1", -30)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestAdjustQuantity_DesbordeDeIntegerEsEntradaInvalida(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewItemRepository(mock)

	mock.ExpectQuery(adjustSQL).
		WithArgs("item-1", 2).
		WillReturnError(&pgconn.PgError{Code: "22003", Message: "integer out of range"})

	_, err := repo.AdjustQuantity(context.Background(), "item-1", 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
