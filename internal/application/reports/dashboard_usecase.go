// Package reports contiene los casos de uso de solo lectura: dashboard e historial de movimientos.
package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/application/inventory"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

const dashboardRecentActivity = 10 // movimientos en el widget de actividad reciente

// DashboardUseCase genera el resumen del inventario para la página Dashboard.
type DashboardUseCase struct {
	items        repository.ItemRepository
	transactions repository.TransactionRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(items repository.ItemRepository, transactions repository.TransactionRepository) *DashboardUseCase {
	return &DashboardUseCase{items: items, transactions: transactions}
}

// GetSummary total de componentes, valor del inventario, alertas de stock bajo y últimos movimientos.
//
// Tres consultas en paralelo:
//  1. List         → TotalComponents + InventoryValue
//  2. ListLowStock → LowStockCount + LowStockItems
//  3. ListRecent   → RecentActivity
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type itemsResult struct {
		items []*entity.InventoryItem
		err   error
	}
	type recentResult struct {
		txs []*entity.Transaction
		err error
	}

	allCh := make(chan itemsResult, 1)
	lowCh := make(chan itemsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		items, err := uc.items.List(ctx, repository.ItemFilter{})
		allCh <- itemsResult{items, err}
	}()
	go func() {
		items, err := uc.items.ListLowStock(ctx)
		lowCh <- itemsResult{items, err}
	}()
	go func() {
		txs, err := uc.transactions.ListRecent(ctx, dashboardRecentActivity, 0)
		recentCh <- recentResult{txs, err}
	}()

	all := <-allCh
	low := <-lowCh
	recent := <-recentCh

	if all.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", all.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: actividad reciente: %w", recent.err)
	}

	total := 0
	value := decimal.Zero
	for _, it := range all.items {
		total += it.Quantity
		value = value.Add(it.Value())
	}

	lowItems := make([]dto.ItemResponse, 0, len(low.items))
	for _, it := range low.items {
		lowItems = append(lowItems, *inventory.ToItemResponse(it))
	}

	return &dto.DashboardSummaryDTO{
		TotalComponents:  total,
		InventoryValue:   value.Round(2),
		LowStockCount:    len(lowItems),
		LowStockItems:    lowItems,
		RecentActivity:   toTransactionList(recent.txs),
		InventoryIsEmpty: len(all.items) == 0,
	}, nil
}

func toTransactionList(txs []*entity.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, *inventory.ToTransactionResponse(t))
	}
	return out
}
