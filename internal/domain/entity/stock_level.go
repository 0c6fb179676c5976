package entity

import "time"

// DefaultLocation ubicación por defecto cuando el caller no indica una.
const DefaultLocation = "main"

// StockLevel representa la cantidad en mano de un producto en una ubicación.
// Una fila por par (producto, ubicación); se crea perezosamente con el primer
// movimiento. Invariante: Quantity >= 0 siempre (lo garantiza el ledger).
type StockLevel struct {
	ID        string
	ProductID string
	Location  string
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
