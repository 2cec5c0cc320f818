package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	TotalComponents  int                   `json:"total_components"` // suma de cantidades
	InventoryValue   decimal.Decimal       `json:"inventory_value"`  // Σ quantity * price
	LowStockCount    int                   `json:"low_stock_count"`
	LowStockItems    []ItemResponse        `json:"low_stock_items"`
	RecentActivity   []TransactionResponse `json:"recent_activity"` // últimos 10
	InventoryIsEmpty bool                  `json:"inventory_is_empty"`
}

// ItemActivityDTO cantidad de movimientos de un ítem.
type ItemActivityDTO struct {
	ItemName     string `json:"item_name"`
	Transactions int    `json:"transactions"`
}

// ReportSummaryDTO respuesta de GET /api/reports/summary.
type ReportSummaryDTO struct {
	VolumeByType  map[string]int    `json:"volume_by_type"`
	MostActive    []ItemActivityDTO `json:"most_active"`
	TotalMovement int               `json:"total_transactions"`
}

// TransactionLogResponse página del historial completo (más reciente primero).
type TransactionLogResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
