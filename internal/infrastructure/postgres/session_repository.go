package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre la tabla sessions.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador de sesiones.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create inserta la sesión.
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		s.Token, s.UserID, s.ExpiresAt, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Touch valida y desliza la expiración en una sola sentencia condicional.
func (r *SessionRepo) Touch(ctx context.Context, token string, now, newExpiry time.Time) (string, bool, error) {
	var userID string
	err := r.q.QueryRow(ctx, `
		UPDATE sessions SET expires_at = $3
		WHERE token = $1 AND expires_at > $2
		RETURNING user_id`, token, now, newExpiry).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("touch session: %w", err)
	}
	return userID, true, nil
}

// DeleteExpired borra la sesión solo si ya venció.
func (r *SessionRepo) DeleteExpired(ctx context.Context, token string, now time.Time) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE token = $1 AND expires_at <= $2`, token, now)
	if err != nil {
		return fmt.Errorf("delete expired session: %w", err)
	}
	return nil
}

// Delete borra la sesión; no falla si no existe.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Sweep borra todas las sesiones vencidas (usa el índice sobre expires_at).
func (r *SessionRepo) Sweep(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
