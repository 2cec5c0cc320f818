package dto

import "time"

// CreateUserRequest alta de usuario (admin). El secreto se hashea en el caso de uso.
type CreateUserRequest struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Phone      string `json:"phone,omitempty"`
}

// UpdateUserRequest edición parcial (admin). Campos nil no se modifican;
// Password vacío o nil conserva el secreto actual.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UpdateProfileRequest edición del propio perfil (My Profile). No permite cambiar el rol.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserResponse salida de un usuario (sin secreto).
type UserResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

// LoginResponse token opaco de sesión + usuario y páginas permitidas.
type LoginResponse struct {
	Token       string       `json:"token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
	Permissions []string     `json:"permissions"`
}

// SessionResponse estado de la sesión actual (GET /api/auth/session).
type SessionResponse struct {
	User        UserResponse `json:"user"`
	Permissions []string     `json:"permissions"`
}
