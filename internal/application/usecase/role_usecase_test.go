package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/application/usecase"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
)

func TestCreateRole_ValidaPaginas(t *testing.T) {
	ctx := context.Background()
	store := newStoreWithRoles(t)
	uc := usecase.NewRoleUseCase(store.Roles())

	res, err := uc.Create(ctx, dto.RoleRequest{Name: "técnico", Permissions: []string{"Stock Operations", "Dashboard"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dashboard", "Stock Operations"}, res.Permissions)

	_, err = uc.Create(ctx, dto.RoleRequest{Name: "raro", Permissions: []string{"Billing"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrUnknownPage)

	_, err = uc.Create(ctx, dto.RoleRequest{Name: "técnico"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.RoleRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateRole(t *testing.T) {
	ctx := context.Background()
	store := newStoreWithRoles(t)
	uc := usecase.NewRoleUseCase(store.Roles())

	res, err := uc.Update(ctx, entity.RoleAssistant, []string{"Dashboard", "Reports"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dashboard", "Reports"}, res.Permissions)

	role, err := store.Roles().GetByName(ctx, entity.RoleAssistant)
	require.NoError(t, err)
	assert.False(t, role.Permissions.Has(entity.PageInventory))

	_, err = uc.Update(ctx, entity.RoleAssistant, []string{"Nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "fantasma", []string{"Dashboard"})
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
}

func TestListRoles(t *testing.T) {
	store := newStoreWithRoles(t)
	list, err := usecase.NewRoleUseCase(store.Roles()).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.RoleAdmin, list[0].Name)
	assert.Len(t, list[0].Permissions, len(entity.AllPages))
}
