package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

// ItemUseCase casos de uso del catálogo: alta, listado, importación masiva, bajas y stock bajo.
// La cantidad de un ítem existente solo cambia vía MovementUseCase.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create da de alta un ítem. Name es obligatorio; categoría y ubicación vacías toman los valores por defecto.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	threshold := entity.DefaultReorderThreshold
	if in.ReorderThreshold != nil {
		threshold = *in.ReorderThreshold
	}
	item, ok := newItem(in.Name, in.Category, in.Location, in.Quantity, threshold, in.Price)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// List lista ítems filtrando por nombre (contiene, sin distinguir mayúsculas) y categoría.
func (uc *ItemUseCase) List(ctx context.Context, search, category string) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(ctx, repository.ItemFilter{
		Search:   strings.TrimSpace(search),
		Category: strings.TrimSpace(category),
	})
	if err != nil {
		return nil, err
	}
	return toItemList(list), nil
}

// Categories categorías sugeridas y categorías en uso.
func (uc *ItemUseCase) Categories(ctx context.Context) (*dto.CategoriesResponse, error) {
	inUse, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if inUse == nil {
		inUse = []string{}
	}
	suggested := make([]string, len(entity.Categories))
	copy(suggested, entity.Categories)
	return &dto.CategoriesResponse{Suggested: suggested, InUse: inUse}, nil
}

// Delete elimina un ítem. Los movimientos conservan el nombre copiado; ItemID queda como referencia débil.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	if !entity.ValidID(id) {
		return domain.ErrNotFound
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// BulkImport inserta las filas válidas y devuelve cuántas se importaron.
// Filas sin nombre o con números negativos o fuera de rango se omiten sin error.
func (uc *ItemUseCase) BulkImport(ctx context.Context, rows []dto.ImportRow) (*dto.ImportResponse, error) {
	count := 0
	for _, row := range rows {
		qty := 0
		if row.Quantity != nil {
			qty = *row.Quantity
		}
		threshold := entity.DefaultReorderThreshold
		if row.ReorderThreshold != nil {
			threshold = *row.ReorderThreshold
		}
		price := decimal.Zero
		if row.Price != nil {
			price = *row.Price
		}
		item, ok := newItem(row.Name, row.Category, row.Location, qty, threshold, price)
		if !ok {
			continue
		}
		if err := uc.repo.Create(ctx, item); err != nil {
			return nil, err
		}
		count++
	}
	return &dto.ImportResponse{Imported: count, Skipped: len(rows) - count}, nil
}

// LowStock ítems con quantity <= min_stock (empates incluidos), ordenados por nombre.
func (uc *ItemUseCase) LowStock(ctx context.Context) (*dto.ItemListResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toItemList(list), nil
}

// newItem aplica valores por defecto y valida. ok=false si falta el nombre
// o algún número es negativo o no cabe en su columna.
func newItem(name, category, location string, qty, threshold int, price decimal.Decimal) (*entity.InventoryItem, bool) {
	name = strings.TrimSpace(name)
	if name == "" || !entity.CountInRange(qty) || !entity.CountInRange(threshold) || !entity.PriceInRange(price) {
		return nil, false
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = entity.DefaultCategory
	}
	location = strings.TrimSpace(location)
	if location == "" {
		location = entity.DefaultLocation
	}
	now := time.Now()
	return &entity.InventoryItem{
		ID:               uuid.New().String(),
		Name:             name,
		Category:         category,
		Location:         location,
		Quantity:         qty,
		ReorderThreshold: threshold,
		Price:            price,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, true
}

func toItemList(list []*entity.InventoryItem) *dto.ItemListResponse {
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *ToItemResponse(it))
	}
	return &dto.ItemListResponse{Items: items, Total: len(items)}
}
