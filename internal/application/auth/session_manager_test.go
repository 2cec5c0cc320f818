package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventario-api/internal/application/auth"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/memory"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

// fakeClock reloj manual para recorrer la ventana deslizante.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func seedUser(t *testing.T, store *memory.Store, employeeID, secret, role string) *entity.User {
	t.Helper()
	ctx := context.Background()
	for _, r := range entity.DefaultRoles() {
		if existing, _ := store.Roles().GetByName(ctx, r.Name); existing == nil {
			r := r
			require.NoError(t, store.Roles().Create(ctx, &r))
		}
	}
	hash, err := auth.HashPassword(secret)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "u-" + employeeID,
		EmployeeID:   employeeID,
		Name:         "Nombre " + employeeID,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, store.Users().Create(ctx, u))
	return u
}

func newManager(store *memory.Store) (*auth.SessionManager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	m := auth.NewSessionManager(store.Sessions(), store.Users(), 5*time.Minute)
	m.SetClock(clock.Now)
	return m, clock
}

// ── Ventana deslizante ────────────────────────────────────────────────────────

func TestValidate_VentanaDeslizante(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	u := seedUser(t, store, "admin", "admin123", entity.RoleAdmin)
	m, clock := newManager(store)

	sess, err := m.Create(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(5*time.Minute), sess.ExpiresAt)

	// cada validación antes de 5 min extiende la sesión
	for i := 0; i < 3; i++ {
		clock.Advance(4 * time.Minute)
		got, err := m.Validate(ctx, sess.Token)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
	}

	// 5 min sin actividad: vencida y eliminada al acceder
	clock.Advance(5 * time.Minute)
	got, err := m.Validate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, store.Sessions().Len())
}

func TestValidate_JustoAntesYEnElLimite(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	u := seedUser(t, store, "a1", "x", entity.RoleAssistant)

	m, clock := newManager(store)
	sess, err := m.Create(ctx, u.ID)
	require.NoError(t, err)
	clock.Advance(5*time.Minute - time.Second)
	got, err := m.Validate(ctx, sess.Token)
	require.NoError(t, err)
	assert.NotNil(t, got)

	m2, clock2 := newManager(store)
	sess2, err := m2.Create(ctx, u.ID)
	require.NoError(t, err)
	clock2.Advance(5 * time.Minute)
	got, err = m2.Validate(ctx, sess2.Token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestValidate_TokenDesconocidoOVacio(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(memory.NewStore())

	got, err := m.Validate(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = m.Validate(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInvalidate_Idempotente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	u := seedUser(t, store, "a2", "x", entity.RoleAssistant)
	m, _ := newManager(store)

	sess, err := m.Create(ctx, u.ID)
	require.NoError(t, err)
	require.NoError(t, m.Invalidate(ctx, sess.Token))
	require.NoError(t, m.Invalidate(ctx, sess.Token))

	got, err := m.Validate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreate_TokensUnicos(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	u := seedUser(t, store, "a3", "x", entity.RoleAssistant)
	m, _ := newManager(store)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		sess, err := m.Create(ctx, u.ID)
		require.NoError(t, err)
		_, dup := seen[sess.Token]
		require.False(t, dup)
		seen[sess.Token] = struct{}{}
	}
}

func TestSweep_EliminaSoloVencidas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	u := seedUser(t, store, "a4", "x", entity.RoleAssistant)
	m, clock := newManager(store)

	old, err := m.Create(ctx, u.ID)
	require.NoError(t, err)
	clock.Advance(3 * time.Minute)
	fresh, err := m.Create(ctx, u.ID)
	require.NoError(t, err)
	clock.Advance(3 * time.Minute)

	n, err := m.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := m.Validate(ctx, fresh.Token)
	require.NoError(t, err)
	assert.NotNil(t, got)
	got, err = m.Validate(ctx, old.Token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestValidate_UsuarioInexistenteInvalidaSesion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	m, _ := newManager(store)

	sess, err := m.Create(ctx, "usuario-borrado")
	require.NoError(t, err)

	got, err := m.Validate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, store.Sessions().Len())
}
