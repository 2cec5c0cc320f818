package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventario-api/internal/application/access"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/memory"
)

func seededGate(t *testing.T) (*access.Gate, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, r := range entity.DefaultRoles() {
		r := r
		require.NoError(t, store.Roles().Create(context.Background(), &r))
	}
	return access.NewGate(store.Roles()), store
}

func TestIsAllowed_RolesPorDefecto(t *testing.T) {
	ctx := context.Background()
	gate, _ := seededGate(t)

	for _, page := range entity.AllPages {
		ok, err := gate.IsAllowed(ctx, entity.RoleAdmin, page)
		require.NoError(t, err)
		assert.True(t, ok, "admin debe acceder a %s", page)
	}

	ok, err := gate.IsAllowed(ctx, entity.RoleAssistant, entity.PageUserManagement)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.IsAllowed(ctx, entity.RoleAssistant, entity.PageSettings)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.IsAllowed(ctx, entity.RoleAssistant, entity.PageStockOperations)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAllowed_MiPerfilSiempre(t *testing.T) {
	ctx := context.Background()
	gate, store := seededGate(t)
	require.NoError(t, store.Roles().Create(ctx, &entity.Role{Name: "visitante", Permissions: entity.NewPageSet()}))

	for _, role := range []string{"visitante", "inexistente", ""} {
		ok, err := gate.IsAllowed(ctx, role, entity.PageMyProfile)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestIsAllowed_RolInexistenteOPaginaDesconocida(t *testing.T) {
	ctx := context.Background()
	gate, _ := seededGate(t)

	ok, err := gate.IsAllowed(ctx, "inexistente", entity.PageDashboard)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.IsAllowed(ctx, entity.RoleAdmin, entity.Page("Billing"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPermissionsFor_EdicionAplicaDeInmediato(t *testing.T) {
	ctx := context.Background()
	gate, store := seededGate(t)

	ok, err := gate.IsAllowed(ctx, entity.RoleAssistant, entity.PageReports)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Roles().Update(ctx, &entity.Role{
		Name:        entity.RoleAssistant,
		Permissions: entity.NewPageSet(entity.PageDashboard),
	}))

	ok, err = gate.IsAllowed(ctx, entity.RoleAssistant, entity.PageReports)
	require.NoError(t, err)
	assert.False(t, ok)

	perms, err := gate.PermissionsFor(ctx, entity.RoleAssistant)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dashboard"}, perms.Strings())
}

func TestPermissionsFor_RolInexistenteVacio(t *testing.T) {
	gate, _ := seededGate(t)
	perms, err := gate.PermissionsFor(context.Background(), "inexistente")
	require.NoError(t, err)
	assert.Empty(t, perms)
}

type brokenRoles struct{ repository.RoleRepository }

func (brokenRoles) GetByName(context.Context, string) (*entity.Role, error) {
	return nil, errors.New("conexión cerrada")
}

func TestIsAllowed_PropagaErrorDeStore(t *testing.T) {
	gate := access.NewGate(brokenRoles{})
	_, err := gate.IsAllowed(context.Background(), entity.RoleAdmin, entity.PageDashboard)
	assert.Error(t, err)
}
