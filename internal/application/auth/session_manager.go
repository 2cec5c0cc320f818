package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

// DefaultSessionTTL ventana deslizante de inactividad.
const DefaultSessionTTL = 5 * time.Minute

// SessionManager emite y valida tokens opacos con expiración deslizante.
// Estados: ausente -> activa (Create) -> activa con vencimiento extendido (Validate) -> ausente (Invalidate o vencimiento).
type SessionManager struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionManager construye el gestor. ttl <= 0 usa DefaultSessionTTL.
func NewSessionManager(sessions repository.SessionRepository, users repository.UserRepository, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{sessions: sessions, users: users, ttl: ttl, now: time.Now}
}

// SetClock reemplaza el reloj (tests).
func (m *SessionManager) SetClock(now func() time.Time) {
	m.now = now
}

// TTL duración de la ventana deslizante.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Create emite un token nuevo para el usuario con vencimiento now + TTL.
func (m *SessionManager) Create(ctx context.Context, userID string) (*entity.Session, error) {
	now := m.now()
	sess := &entity.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}
	if err := m.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Validate resuelve el usuario del token y extiende su vencimiento a now + TTL.
// Token desconocido o vencido -> (nil, nil); un token vencido se elimina al consultarlo.
// Si el usuario ya no existe la sesión se invalida.
func (m *SessionManager) Validate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	now := m.now()
	userID, ok, err := m.sessions.Touch(ctx, token, now, now.Add(m.ttl))
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := m.sessions.DeleteExpired(ctx, token, now); err != nil {
			return nil, err
		}
		return nil, nil
	}

	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if err := m.sessions.Delete(ctx, token); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return user, nil
}

// Invalidate elimina la sesión. Idempotente.
func (m *SessionManager) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.sessions.Delete(ctx, token)
}

// Sweep elimina todas las sesiones vencidas y devuelve cuántas borró.
func (m *SessionManager) Sweep(ctx context.Context) (int64, error) {
	return m.sessions.Sweep(ctx, m.now())
}
