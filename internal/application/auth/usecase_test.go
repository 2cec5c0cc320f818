package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventario-api/internal/application/access"
	"github.com/jhoicas/labinventario-api/internal/application/auth"
	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/memory"
)

func newAuth(store *memory.Store) *auth.AuthUseCase {
	sessions := auth.NewSessionManager(store.Sessions(), store.Users(), 5*time.Minute)
	return auth.NewAuthUseCase(store.Users(), sessions, access.NewGate(store.Roles()))
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedUser(t, store, "admin", "admin123", entity.RoleAdmin)
	uc := newAuth(store)

	u, err := uc.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "admin", u.EmployeeID)

	u, err = uc.Authenticate(ctx, "admin", "otra")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = uc.Authenticate(ctx, "nadie", "admin123")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestAuthenticate_NoGuardaSecretoEnClaro(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "assistant", "123", entity.RoleAssistant)
	assert.NotEqual(t, "123", u.PasswordHash)
	assert.True(t, auth.CheckPassword(u.PasswordHash, "123"))
}

func TestLogin_DevuelveTokenYPermisos(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedUser(t, store, "assistant", "123", entity.RoleAssistant)
	uc := newAuth(store)

	res, err := uc.Login(ctx, dto.LoginRequest{EmployeeID: "assistant", Password: "123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "assistant", res.User.EmployeeID)
	assert.NotContains(t, res.Permissions, string(entity.PageUserManagement))
	assert.NotContains(t, res.Permissions, string(entity.PageSettings))
	assert.Contains(t, res.Permissions, string(entity.PageStockOperations))

	p, err := uc.Resolve(ctx, res.Token)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "assistant", p.User.EmployeeID)
	assert.False(t, p.Permissions.Has(entity.PageUserManagement))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedUser(t, store, "admin", "admin123", entity.RoleAdmin)
	uc := newAuth(store)

	for _, in := range []dto.LoginRequest{
		{EmployeeID: "admin", Password: "mal"},
		{EmployeeID: "otro", Password: "admin123"},
		{EmployeeID: "", Password: ""},
	} {
		_, err := uc.Login(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
	assert.Zero(t, store.Sessions().Len())
}

func TestLogout_InvalidaElToken(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedUser(t, store, "admin", "admin123", entity.RoleAdmin)
	uc := newAuth(store)

	res, err := uc.Login(ctx, dto.LoginRequest{EmployeeID: "admin", Password: "admin123"})
	require.NoError(t, err)
	require.NoError(t, uc.Logout(ctx, res.Token))

	p, err := uc.Resolve(ctx, res.Token)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestResolve_PermisosReflejanEdicionDelRol(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedUser(t, store, "assistant", "123", entity.RoleAssistant)
	uc := newAuth(store)

	res, err := uc.Login(ctx, dto.LoginRequest{EmployeeID: "assistant", Password: "123"})
	require.NoError(t, err)

	require.NoError(t, store.Roles().Update(ctx, &entity.Role{
		Name:        entity.RoleAssistant,
		Permissions: entity.NewPageSet(entity.PageDashboard, entity.PageReports),
	}))

	p, err := uc.Resolve(ctx, res.Token)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"Dashboard", "Reports"}, p.Permissions.Strings())
}
