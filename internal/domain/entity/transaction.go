package entity

import "time"

// Dirección de un movimiento de stock.
const (
	DirectionIn  = "in"  // entrada
	DirectionOut = "out" // salida
)

// Transaction registro inmutable de un movimiento de stock.
// ItemName es una copia del nombre al momento del movimiento; ItemID es referencia débil.
type Transaction struct {
	ID        string
	ItemID    string
	ItemName  string
	Direction string // in, out
	Quantity  int    // siempre positivo
	User      string // nombre visible de quien registró el movimiento
	Timestamp time.Time
	Notes     string
}
