package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest alta manual de un ítem. Name es obligatorio.
type CreateItemRequest struct {
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Location         string          `json:"location"`
	Quantity         int             `json:"quantity"`
	ReorderThreshold *int            `json:"min_stock,omitempty"`
	Price            decimal.Decimal `json:"price"`
}

// ImportRow fila de importación masiva. Los campos ausentes toman los valores por defecto.
type ImportRow struct {
	Name             string           `json:"name"`
	Category         string           `json:"category,omitempty"`
	Location         string           `json:"location,omitempty"`
	Quantity         *int             `json:"quantity,omitempty"`
	ReorderThreshold *int             `json:"min_stock,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
}

// ImportRequest body de POST /api/inventory/import.
type ImportRequest struct {
	Rows []ImportRow `json:"rows"`
}

// ImportResponse cantidad de filas importadas (las inválidas se omiten sin detalle).
type ImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ItemResponse ítem de inventario.
type ItemResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Location         string          `json:"location"`
	Quantity         int             `json:"quantity"`
	ReorderThreshold int             `json:"min_stock"`
	Price            decimal.Decimal `json:"price"`
	LowStock         bool            `json:"low_stock"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ItemListResponse listado de inventario.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// StockMovementRequest body de POST /api/stock/in y /api/stock/out.
type StockMovementRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// StockMovementResponse resultado de un movimiento aplicado.
type StockMovementResponse struct {
	Item        ItemResponse        `json:"item"`
	Transaction TransactionResponse `json:"transaction"`
}

// TransactionResponse movimiento registrado.
type TransactionResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Direction string    `json:"type"`
	Quantity  int       `json:"quantity"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// ShoppingListItem ítem a reponer: Required = min_stock - quantity; EstimatedCost = Required * price.
type ShoppingListItem struct {
	ItemID           string          `json:"item_id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Quantity         int             `json:"quantity"`
	ReorderThreshold int             `json:"min_stock"`
	Required         int             `json:"required"`
	Price            decimal.Decimal `json:"price"`
	EstimatedCost    decimal.Decimal `json:"estimated_cost"`
}

// ShoppingListResponse lista de compras con costo total estimado.
type ShoppingListResponse struct {
	Items              []ShoppingListItem `json:"items"`
	TotalEstimatedCost decimal.Decimal    `json:"total_estimated_cost"`
	GeneratedAt        time.Time          `json:"generated_at"`
}

// CategoriesResponse categorías sugeridas para el alta y categorías con ítems registrados.
type CategoriesResponse struct {
	Suggested []string `json:"suggested"`
	InUse     []string `json:"in_use"`
}
