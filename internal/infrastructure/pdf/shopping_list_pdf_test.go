package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/pdf"
)

func TestGenerate_ListaConItems(t *testing.T) {
	list := &dto.ShoppingListResponse{
		Items: []dto.ShoppingListItem{{
			ItemID: "1", Name: "Arduino Uno", Category: "Microcontrollers",
			Quantity: 2, ReorderThreshold: 5, Required: 3,
			Price: decimal.RequireFromString("25.50"), EstimatedCost: decimal.RequireFromString("76.50"),
		}},
		TotalEstimatedCost: decimal.RequireFromString("76.50"),
		GeneratedAt:        time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	b, err := pdf.NewShoppingListPDF("").Generate(context.Background(), list)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerate_ListaVacia(t *testing.T) {
	b, err := pdf.NewShoppingListPDF("Lab").Generate(context.Background(), &dto.ShoppingListResponse{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}
