package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación de RoleRepository. permissions es un JSONB con el arreglo de páginas.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Create inserta un rol nuevo. Nombre repetido -> ErrDuplicate.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	perms, err := encodePermissions(role.Permissions)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `INSERT INTO roles (name, permissions) VALUES ($1, $2)`, role.Name, perms)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByName obtiene un rol; (nil, nil) si no existe.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var raw []byte
	role := entity.Role{Name: name}
	err := r.q.QueryRow(ctx, `SELECT permissions FROM roles WHERE name = $1`, name).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	if role.Permissions, err = decodePermissions(raw); err != nil {
		return nil, err
	}
	return &role, nil
}

// Update reemplaza el conjunto de permisos del rol.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	perms, err := encodePermissions(role.Permissions)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `UPDATE roles SET permissions = $2 WHERE name = $1`, role.Name, perms)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

// List lista los roles ordenados por nombre.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT name, permissions FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var (
			role entity.Role
			raw  []byte
		)
		if err := rows.Scan(&role.Name, &raw); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		if role.Permissions, err = decodePermissions(raw); err != nil {
			return nil, err
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

func encodePermissions(s entity.PageSet) ([]byte, error) {
	b, err := json.Marshal(s.Strings())
	if err != nil {
		return nil, fmt.Errorf("encode permissions: %w", err)
	}
	return b, nil
}

// decodePermissions descarta páginas que ya no existen en la enumeración en lugar de fallar la lectura.
func decodePermissions(raw []byte) (entity.PageSet, error) {
	var names []string
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &names); err != nil {
			return nil, fmt.Errorf("decode permissions: %w", err)
		}
	}
	set := make(entity.PageSet, len(names))
	for _, n := range names {
		if p := entity.Page(n); p.Valid() {
			set[p] = struct{}{}
		}
	}
	return set, nil
}
