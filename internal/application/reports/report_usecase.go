package reports

import (
	"context"
	"fmt"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

const mostActiveItems = 10

// ReportUseCase volumen de movimientos, ítems más activos e historial completo.
type ReportUseCase struct {
	transactions repository.TransactionRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(transactions repository.TransactionRepository) *ReportUseCase {
	return &ReportUseCase{transactions: transactions}
}

// Summary cantidad de movimientos por tipo (in/out) y los 10 ítems con más movimientos.
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.ReportSummaryDTO, error) {
	byType, err := uc.transactions.CountByDirection(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: volumen por tipo: %w", err)
	}
	top, err := uc.transactions.TopItems(ctx, mostActiveItems)
	if err != nil {
		return nil, fmt.Errorf("reportes: ítems más activos: %w", err)
	}

	volume := map[string]int{entity.DirectionIn: 0, entity.DirectionOut: 0}
	total := 0
	for dir, n := range byType {
		volume[dir] = n
		total += n
	}
	active := make([]dto.ItemActivityDTO, 0, len(top))
	for _, a := range top {
		active = append(active, dto.ItemActivityDTO{ItemName: a.ItemName, Transactions: a.Count})
	}
	return &dto.ReportSummaryDTO{VolumeByType: volume, MostActive: active, TotalMovement: total}, nil
}

// TransactionLog historial completo, más reciente primero, paginado.
func (uc *ReportUseCase) TransactionLog(ctx context.Context, page dto.PageRequest) (*dto.TransactionLogResponse, error) {
	page.DefaultPage()
	txs, err := uc.transactions.ListRecent(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("reportes: historial: %w", err)
	}
	total, err := uc.transactions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: conteo: %w", err)
	}
	return &dto.TransactionLogResponse{
		Items: toTransactionList(txs),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
