package entity

import "time"

// Roles sembrados en el primer arranque. Se pueden crear otros desde Settings.
const (
	RoleAdmin     = "admin"
	RoleAssistant = "assistant"
)

// User representa un usuario del laboratorio identificado por su código de empleado.
type User struct {
	ID           string
	EmployeeID   string // único
	Name         string
	PasswordHash string // bcrypt, nunca el secreto en claro
	Role         string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
