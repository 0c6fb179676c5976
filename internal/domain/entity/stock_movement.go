package entity

import "time"

// MovementType tipo cerrado de movimiento de inventario.
type MovementType string

// Tipos de movimiento.
const (
	MovementIn     MovementType = "in"     // entrada (compra, recepción de OC)
	MovementOut    MovementType = "out"    // salida (venta)
	MovementAdjust MovementType = "adjust" // ajuste absoluto (conteo físico)
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjust:
		return true
	}
	return false
}

// StockMovement representa un movimiento de inventario: registro inmutable y
// append-only. Una vez escrito nunca se modifica ni se borra; es la pista de
// auditoría de la que derivan los niveles de stock.
type StockMovement struct {
	ID          string
	ProductID   string
	Type        MovementType
	Quantity    int64
	ReferenceID *string // OC o venta que originó el movimiento
	Notes       string
	CreatedAt   time.Time
}
