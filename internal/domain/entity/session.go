package entity

import "time"

// Session es la credencial opaca emitida al iniciar sesión.
// UserID es una referencia débil: la sesión no es dueña del usuario.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired informa si la sesión venció respecto a now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
