package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmployeeIDExists     = errors.New("el código de empleado ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrUnknownPage          = errors.New("página desconocida")
	ErrRoleNotFound         = errors.New("rol no encontrado")
	ErrTooManyLoginAttempts = errors.New("demasiados intentos de inicio de sesión")
)
