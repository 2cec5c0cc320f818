package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventario-api/internal/application/auth"
	"github.com/jhoicas/labinventario-api/internal/application/bootstrap"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/memory"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

func TestSeeder_PrimerArranque(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := bootstrap.NewSeeder(store.Users(), store.Roles(), logger.Nop())

	require.NoError(t, s.Run(ctx))

	admin, err := store.Users().GetByEmployeeID(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "admin123"))

	asst, err := store.Users().GetByEmployeeID(ctx, "assistant")
	require.NoError(t, err)
	require.NotNil(t, asst)
	assert.True(t, auth.CheckPassword(asst.PasswordHash, "123"))

	role, err := store.Roles().GetByName(ctx, entity.RoleAssistant)
	require.NoError(t, err)
	assert.False(t, role.Permissions.Has(entity.PageUserManagement))
	assert.False(t, role.Permissions.Has(entity.PageSettings))
}

func TestSeeder_Idempotente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := bootstrap.NewSeeder(store.Users(), store.Roles(), logger.Nop())

	require.NoError(t, s.Run(ctx))
	require.NoError(t, store.Roles().Update(ctx, &entity.Role{Name: entity.RoleAssistant, Permissions: entity.NewPageSet(entity.PageDashboard)}))
	require.NoError(t, s.Run(ctx))

	n, err := store.Users().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	role, err := store.Roles().GetByName(ctx, entity.RoleAssistant)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dashboard"}, role.Permissions.Strings())
}
