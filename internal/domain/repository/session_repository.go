package repository

import (
	"context"
	"time"

	"github.com/jhoicas/labinventario-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia para sesiones opacas.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error

	// Touch extiende a newExpiry la sesión token si sigue vigente en now, en una sola sentencia.
	// Devuelve el UserID y ok=false si el token no existe o ya venció.
	Touch(ctx context.Context, token string, now, newExpiry time.Time) (userID string, ok bool, err error)

	// DeleteExpired borra la sesión token solo si venció en now (expiración al acceder).
	DeleteExpired(ctx context.Context, token string, now time.Time) error

	Delete(ctx context.Context, token string) error

	// Sweep borra todas las sesiones vencidas y devuelve cuántas eliminó.
	Sweep(ctx context.Context, now time.Time) (int64, error)
}
