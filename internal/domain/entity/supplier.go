package entity

import "time"

// Supplier representa un proveedor; referenciado por órdenes de compra,
// sin acoplamiento de ciclo de vida con el stock.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
