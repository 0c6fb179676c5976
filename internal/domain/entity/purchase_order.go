package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de compra (conjunto cerrado).
type OrderStatus string

// Estados del ciclo de vida de una orden de compra.
const (
	OrderDraft     OrderStatus = "draft"
	OrderOrdered   OrderStatus = "ordered"
	OrderReceived  OrderStatus = "received"  // terminal
	OrderCancelled OrderStatus = "cancelled" // terminal
)

// orderTransitions tabla explícita de transiciones permitidas.
// Solo hacia adelante; los estados terminales no aceptan transiciones.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderDraft:   {OrderOrdered, OrderCancelled},
	OrderOrdered: {OrderReceived, OrderCancelled},
}

// CanTransition indica si el cambio de estado from → to está permitido.
func (from OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal indica si el estado no admite más transiciones.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// PurchaseOrder representa una orden de compra a un proveedor.
// TotalAmount es un snapshot congelado: Σ(cantidad × precio unitario) de los
// ítems; se recalcula solo mientras la orden sigue en draft.
type PurchaseOrder struct {
	ID          string
	SupplierID  string
	Status      OrderStatus
	TotalAmount decimal.Decimal
	Notes       string
	Items       []PurchaseOrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PurchaseOrderItem línea de una orden de compra.
// ReceivedQuantity inicia en 0 y pasa a Quantity al recibir (todo o nada).
type PurchaseOrderItem struct {
	ID               string
	OrderID          string
	ProductID        string
	Quantity         int64
	UnitPrice        decimal.Decimal
	ReceivedQuantity int64
}

// ComputeTotal deriva el total congelado de la orden a partir de sus ítems.
func ComputeTotal(items []PurchaseOrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}
