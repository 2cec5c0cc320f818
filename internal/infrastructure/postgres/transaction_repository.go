package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, item_id, item_name, type, quantity, "user", "timestamp", notes`

// TransactionRepo registro de movimientos sobre la tabla transactions (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta el movimiento. Asigna ID si viene vacío.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ItemID, t.ItemName, t.Direction, t.Quantity, t.User, t.Timestamp, t.Notes,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// ListRecent movimientos del más reciente al más antiguo.
func (r *TransactionRepo) ListRecent(ctx context.Context, limit, offset int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY "timestamp" DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.ItemID, &t.ItemName, &t.Direction, &t.Quantity, &t.User, &t.Timestamp, &t.Notes); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// CountByDirection cantidad de movimientos por tipo (in/out).
func (r *TransactionRepo) CountByDirection(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT type, count(*) FROM transactions GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("count by direction: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int, 2)
	for rows.Next() {
		var (
			dir string
			n   int
		)
		if err := rows.Scan(&dir, &n); err != nil {
			return nil, fmt.Errorf("scan direction count: %w", err)
		}
		out[dir] = n
	}
	return out, rows.Err()
}

// TopItems ítems con más movimientos registrados.
func (r *TransactionRepo) TopItems(ctx context.Context, limit int) ([]repository.ItemActivity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT item_name, count(*) AS n
		FROM transactions
		GROUP BY item_name
		ORDER BY n DESC, item_name
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top items: %w", err)
	}
	defer rows.Close()
	var out []repository.ItemActivity
	for rows.Next() {
		var a repository.ItemActivity
		if err := rows.Scan(&a.ItemName, &a.Count); err != nil {
			return nil, fmt.Errorf("scan item activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Count total de movimientos.
func (r *TransactionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
