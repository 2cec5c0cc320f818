package entity

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jhoicas/labinventario-api/internal/domain"
)

// Page identifica una pantalla o acción del sistema sujeta a permisos.
type Page string

// Enumeración fija de páginas. Los roles solo pueden referenciar estos valores.
const (
	PageDashboard       Page = "Dashboard"
	PageInventory       Page = "Inventory"
	PageStockOperations Page = "Stock Operations"
	PageReports         Page = "Reports"
	PageShoppingList    Page = "Shopping List"
	PageUserManagement  Page = "User Management"
	PageSettings        Page = "Settings"
	PageMyProfile       Page = "My Profile"
)

// AllPages en el orden en que se muestran en la navegación.
var AllPages = []Page{
	PageDashboard,
	PageInventory,
	PageStockOperations,
	PageReports,
	PageShoppingList,
	PageUserManagement,
	PageSettings,
	PageMyProfile,
}

var pageOrder = func() map[Page]int {
	m := make(map[Page]int, len(AllPages))
	for i, p := range AllPages {
		m[p] = i
	}
	return m
}()

// Valid informa si p pertenece a la enumeración.
func (p Page) Valid() bool {
	_, ok := pageOrder[p]
	return ok
}

// ParsePage valida un nombre de página.
func ParsePage(s string) (Page, error) {
	p := Page(s)
	if !p.Valid() {
		return "", fmt.Errorf("%q: %w", s, domain.ErrUnknownPage)
	}
	return p, nil
}

// PageSet conjunto de páginas permitidas. Se serializa como arreglo JSON ordenado.
type PageSet map[Page]struct{}

// NewPageSet construye un conjunto con las páginas dadas (sin validar).
func NewPageSet(pages ...Page) PageSet {
	s := make(PageSet, len(pages))
	for _, p := range pages {
		s[p] = struct{}{}
	}
	return s
}

// ParsePages valida cada nombre contra la enumeración y devuelve el conjunto.
func ParsePages(names []string) (PageSet, error) {
	s := make(PageSet, len(names))
	for _, n := range names {
		p, err := ParsePage(n)
		if err != nil {
			return nil, err
		}
		s[p] = struct{}{}
	}
	return s, nil
}

// Has test de pertenencia.
func (s PageSet) Has(p Page) bool {
	_, ok := s[p]
	return ok
}

// Slice devuelve las páginas en el orden de AllPages.
func (s PageSet) Slice() []Page {
	out := make([]Page, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iok := pageOrder[out[i]]
		oj, jok := pageOrder[out[j]]
		if iok && jok {
			return oi < oj
		}
		if iok != jok {
			return iok
		}
		return out[i] < out[j]
	})
	return out
}

// Strings igual que Slice pero como []string.
func (s PageSet) Strings() []string {
	pages := s.Slice()
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = string(p)
	}
	return out
}

// MarshalJSON serializa como arreglo de strings.
func (s PageSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON acepta un arreglo de strings y rechaza páginas fuera de la enumeración.
func (s *PageSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	parsed, err := ParsePages(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Role agrupa permisos por página bajo un nombre único.
type Role struct {
	Name        string
	Permissions PageSet
}

// DefaultRoles roles sembrados en el primer arranque.
func DefaultRoles() []Role {
	assistant := NewPageSet(AllPages...)
	delete(assistant, PageUserManagement)
	delete(assistant, PageSettings)
	return []Role{
		{Name: RoleAdmin, Permissions: NewPageSet(AllPages...)},
		{Name: RoleAssistant, Permissions: assistant},
	}
}
