package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Valores por defecto aplicados al importar ítems en lote.
const (
	DefaultCategory         = "Others"
	DefaultLocation         = "Unknown"
	DefaultReorderThreshold = 5
)

// Límites de las columnas de inventory: quantity y min_stock son INTEGER, price es NUMERIC(12, 2).
const MaxCount = math.MaxInt32

var maxPrice = decimal.New(1, 10)

// CountInRange informa si n cabe en quantity/min_stock.
func CountInRange(n int) bool { return n >= 0 && n <= MaxCount }

// PriceInRange informa si p cabe en price una vez redondeado a dos decimales.
func PriceInRange(p decimal.Decimal) bool {
	return !p.IsNegative() && p.Round(2).LessThan(maxPrice)
}

// Categorías sugeridas en el formulario de alta.
var Categories = []string{"Microcontrollers", "Sensors", "Motors", "Power", "Passive", "Tools", DefaultCategory}

// InventoryItem representa un componente del laboratorio.
// Quantity nunca baja de cero: las salidas se aplican con un UPDATE condicional.
type InventoryItem struct {
	ID               string
	Name             string
	Category         string
	Location         string
	Quantity         int
	ReorderThreshold int             // min_stock
	Price            decimal.Decimal // precio unitario
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LowStock informa si el ítem está en o por debajo del umbral de reorden.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderThreshold
}

// Value cantidad × precio unitario.
func (i *InventoryItem) Value() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ValidID informa si id tiene formato UUID, el tipo de las columnas id en PostgreSQL.
// Un id con otro formato no puede corresponder a ningún registro.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
