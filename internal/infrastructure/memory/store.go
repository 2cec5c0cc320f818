// Package memory implementa los puertos de persistencia en memoria.
// Se usa con APP_STORE=memory (demo local sin PostgreSQL) y como doble de pruebas.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labinventario-api/internal/application/inventory"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu           sync.Mutex
	txMu         sync.Mutex
	users        map[string]entity.User
	roles        map[string]entity.Role
	sessions     map[string]entity.Session
	items        map[string]entity.InventoryItem
	transactions []entity.Transaction
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]entity.User),
		roles:    make(map[string]entity.Role),
		sessions: make(map[string]entity.Session),
		items:    make(map[string]entity.InventoryItem),
	}
}

// Users repositorio de usuarios sobre el store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Roles repositorio de roles sobre el store.
func (s *Store) Roles() *RoleRepo { return &RoleRepo{s: s} }

// Sessions repositorio de sesiones sobre el store.
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{s: s} }

// Items repositorio de inventario sobre el store.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Transactions repositorio de movimientos sobre el store.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

// TxRunner runner transaccional sobre el store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// ── Users ─────────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.EmployeeID == u.EmployeeID {
			return domain.ErrEmployeeIDExists
		}
	}
	if _, ok := r.s.roles[u.Role]; !ok {
		return domain.ErrRoleNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmployeeID(_ context.Context, employeeID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.EmployeeID == employeeID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := r.s.roles[u.Role]; !ok {
		return domain.ErrRoleNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.users), nil
}

// ── Roles ─────────────────────────────────────────────────────────────────────

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación en memoria de RoleRepository.
type RoleRepo struct{ s *Store }

func (r *RoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roles[role.Name]; ok {
		return domain.ErrDuplicate
	}
	r.s.roles[role.Name] = copyRole(*role)
	return nil
}

func (r *RoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	role, ok := r.s.roles[name]
	if !ok {
		return nil, nil
	}
	c := copyRole(role)
	return &c, nil
}

func (r *RoleRepo) Update(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roles[role.Name]; !ok {
		return domain.ErrRoleNotFound
	}
	r.s.roles[role.Name] = copyRole(*role)
	return nil
}

func (r *RoleRepo) List(_ context.Context) ([]*entity.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		c := copyRole(role)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func copyRole(r entity.Role) entity.Role {
	return entity.Role{Name: r.Name, Permissions: entity.NewPageSet(r.Permissions.Slice()...)}
}

// ── Sessions ──────────────────────────────────────────────────────────────────

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación en memoria de SessionRepository.
type SessionRepo struct{ s *Store }

func (r *SessionRepo) Create(_ context.Context, sess *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions[sess.Token]; ok {
		return domain.ErrDuplicate
	}
	r.s.sessions[sess.Token] = *sess
	return nil
}

func (r *SessionRepo) Touch(_ context.Context, token string, now, newExpiry time.Time) (string, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[token]
	if !ok || sess.Expired(now) {
		return "", false, nil
	}
	sess.ExpiresAt = newExpiry
	r.s.sessions[token] = sess
	return sess.UserID, true, nil
}

func (r *SessionRepo) DeleteExpired(_ context.Context, token string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sess, ok := r.s.sessions[token]; ok && sess.Expired(now) {
		delete(r.s.sessions, token)
	}
	return nil
}

func (r *SessionRepo) Delete(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, token)
	return nil
}

func (r *SessionRepo) Sweep(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for token, sess := range r.s.sessions {
		if sess.Expired(now) {
			delete(r.s.sessions, token)
			n++
		}
	}
	return n, nil
}

// Len cantidad de sesiones almacenadas (vigentes o no).
func (r *SessionRepo) Len() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.sessions)
}

// ── Items ─────────────────────────────────────────────────────────────────────

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de ItemRepository.
// Dentro de TxRunner.Run lleva un undo log con el estado previo de cada ítem que toca.
type ItemRepo struct {
	s    *Store
	undo *undoLog
}

func (r *ItemRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	r.undo.recordItem(r.s, it.ID)
	r.s.items[it.ID] = *it
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *ItemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, error) {
	search := strings.ToLower(f.Search)
	return r.filter(func(it entity.InventoryItem) bool {
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) {
			return false
		}
		return f.Category == "" || it.Category == f.Category
	}), nil
}

func (r *ItemRepo) Categories(_ context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, it := range r.s.items {
		if _, ok := seen[it.Category]; !ok {
			seen[it.Category] = struct{}{}
			out = append(out, it.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *ItemRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.undo.recordItem(r.s, id)
	delete(r.s.items, id)
	return nil
}

func (r *ItemRepo) AdjustQuantity(_ context.Context, id string, delta int) (*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok || it.Quantity+delta < 0 {
		return nil, nil
	}
	if it.Quantity+delta > entity.MaxCount {
		return nil, fmt.Errorf("quantity fuera de rango: %w", domain.ErrInvalidInput)
	}
	r.undo.recordItem(r.s, id)
	it.Quantity += delta
	it.UpdatedAt = time.Now()
	r.s.items[id] = it
	return &it, nil
}

func (r *ItemRepo) ListLowStock(_ context.Context) ([]*entity.InventoryItem, error) {
	return r.filter(func(it entity.InventoryItem) bool { return it.LowStock() }), nil
}

func (r *ItemRepo) filter(keep func(entity.InventoryItem) bool) []*entity.InventoryItem {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		if keep(it) {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ── Transactions ──────────────────────────────────────────────────────────────

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación en memoria de TransactionRepository.
type TransactionRepo struct {
	s    *Store
	undo *undoLog
}

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	r.undo.recordTransaction(t.ID)
	r.s.transactions = append(r.s.transactions, *t)
	return nil
}

func (r *TransactionRepo) ListRecent(_ context.Context, limit, offset int) ([]*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sorted := make([]entity.Transaction, len(r.s.transactions))
	copy(sorted, r.s.transactions)
	// estable: a igual timestamp, el último insertado primero
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.After(sorted[j].Timestamp) })
	if offset >= len(sorted) {
		return nil, nil
	}
	sorted = sorted[offset:]
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	out := make([]*entity.Transaction, len(sorted))
	for i := range sorted {
		out[i] = &sorted[i]
	}
	return out, nil
}

func (r *TransactionRepo) CountByDirection(_ context.Context) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]int, 2)
	for _, t := range r.s.transactions {
		out[t.Direction]++
	}
	return out, nil
}

func (r *TransactionRepo) TopItems(_ context.Context, limit int) ([]repository.ItemActivity, error) {
	r.s.mu.Lock()
	counts := make(map[string]int)
	for _, t := range r.s.transactions {
		counts[t.ItemName]++
	}
	r.s.mu.Unlock()

	out := make([]repository.ItemActivity, 0, len(counts))
	for name, n := range counts {
		out = append(out, repository.ItemActivity{ItemName: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ItemName < out[j].ItemName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *TransactionRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.transactions), nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones. Si fn falla deshace solo lo que escribió fn;
// las escrituras concurrentes fuera de la transacción se conservan.
type TxRunner struct{ s *Store }

func (r *TxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	undo := newUndoLog()
	if err := fn(&ItemRepo{s: r.s, undo: undo}, &TransactionRepo{s: r.s, undo: undo}); err != nil {
		r.s.mu.Lock()
		undo.rollback(r.s)
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// undoLog estado previo de los ítems tocados y movimientos insertados por una transacción.
// Los métodos aceptan receptor nil (repositorios fuera de transacción) y se llaman con s.mu tomado.
type undoLog struct {
	items        map[string]*entity.InventoryItem // nil = el ítem no existía
	transactions map[string]struct{}
}

func newUndoLog() *undoLog {
	return &undoLog{
		items:        make(map[string]*entity.InventoryItem),
		transactions: make(map[string]struct{}),
	}
}

func (u *undoLog) recordItem(s *Store, id string) {
	if u == nil {
		return
	}
	if _, seen := u.items[id]; seen {
		return
	}
	if prev, ok := s.items[id]; ok {
		u.items[id] = &prev
		return
	}
	u.items[id] = nil
}

func (u *undoLog) recordTransaction(id string) {
	if u == nil {
		return
	}
	u.transactions[id] = struct{}{}
}

func (u *undoLog) rollback(s *Store) {
	for id, prev := range u.items {
		if prev == nil {
			delete(s.items, id)
			continue
		}
		s.items[id] = *prev
	}
	if len(u.transactions) == 0 {
		return
	}
	kept := s.transactions[:0]
	for _, t := range s.transactions {
		if _, inserted := u.transactions[t.ID]; !inserted {
			kept = append(kept, t)
		}
	}
	s.transactions = kept
}
