package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, category, location, quantity, min_stock, price, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre la tabla inventory (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un ítem nuevo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Location, item.Quantity,
		item.ReorderThreshold, item.Price, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem; (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List filtra por nombre (ILIKE) y categoría.
func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Search != "" {
		query += fmt.Sprintf(" AND name ILIKE '%%' || $%d || '%%'", pos)
		args = append(args, filter.Search)
		pos++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
	}
	query += " ORDER BY name"
	return r.queryItems(ctx, query, args...)
}

// Categories devuelve las categorías en uso.
func (r *ItemRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM inventory ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete elimina un ítem. Los movimientos conservan item_name.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// AdjustQuantity suma delta a quantity con la guarda quantity + delta >= 0 en la misma sentencia,
// de modo que dos salidas concurrentes no puedan dejar el stock negativo.
func (r *ItemRepo) AdjustQuantity(ctx context.Context, id string, delta int) (*entity.InventoryItem, error) {
	query := `
		UPDATE inventory SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING ` + itemColumns
	item, err := scanItem(r.q.QueryRow(ctx, query, id, delta))
	if err != nil {
		if isNumericOutOfRange(err) {
			return nil, fmt.Errorf("adjust quantity: %w", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("adjust quantity: %w", err)
	}
	return item, nil
}

// ListLowStock ítems con quantity <= min_stock (incluye empates).
func (r *ItemRepo) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.queryItems(ctx, `SELECT `+itemColumns+` FROM inventory WHERE quantity <= min_stock ORDER BY name`)
}

func (r *ItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Location, &it.Quantity,
			&it.ReorderThreshold, &it.Price, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(&it.ID, &it.Name, &it.Category, &it.Location, &it.Quantity,
		&it.ReorderThreshold, &it.Price, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}
