// Package bootstrap siembra los datos iniciales en el primer arranque.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labinventario-api/internal/application/auth"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// DefaultUser credenciales sembradas cuando la tabla de usuarios está vacía.
type DefaultUser struct {
	EmployeeID string
	Name       string
	Secret     string
	Role       string
}

// DefaultUsers admin/admin123 y assistant/123.
var DefaultUsers = []DefaultUser{
	{EmployeeID: "admin", Name: "Administrator", Secret: "admin123", Role: entity.RoleAdmin},
	{EmployeeID: "assistant", Name: "Lab Assistant", Secret: "123", Role: entity.RoleAssistant},
}

// Seeder crea los roles por defecto que falten y, si no hay usuarios, los usuarios por defecto.
type Seeder struct {
	users repository.UserRepository
	roles repository.RoleRepository
	log   *logger.Logger
}

// NewSeeder construye el sembrador.
func NewSeeder(users repository.UserRepository, roles repository.RoleRepository, log *logger.Logger) *Seeder {
	return &Seeder{users: users, roles: roles, log: log}
}

// Run es idempotente: no toca roles existentes ni siembra usuarios si ya hay alguno.
func (s *Seeder) Run(ctx context.Context) error {
	for _, r := range entity.DefaultRoles() {
		existing, err := s.roles.GetByName(ctx, r.Name)
		if err != nil {
			return fmt.Errorf("seed: rol %s: %w", r.Name, err)
		}
		if existing != nil {
			continue
		}
		role := r
		if err := s.roles.Create(ctx, &role); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("seed: crear rol %s: %w", r.Name, err)
		}
		s.log.Info().Str("role", r.Name).Strs("permissions", r.Permissions.Strings()).Msg("rol sembrado")
	}

	n, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: contar usuarios: %w", err)
	}
	if n > 0 {
		return nil
	}

	now := time.Now()
	for _, du := range DefaultUsers {
		hash, err := auth.HashPassword(du.Secret)
		if err != nil {
			return err
		}
		u := &entity.User{
			ID:           uuid.New().String(),
			EmployeeID:   du.EmployeeID,
			Name:         du.Name,
			PasswordHash: hash,
			Role:         du.Role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed: crear usuario %s: %w", du.EmployeeID, err)
		}
		s.log.Warn().Str("employee_id", du.EmployeeID).Msg("usuario por defecto creado; cambie su contraseña")
	}
	return nil
}
