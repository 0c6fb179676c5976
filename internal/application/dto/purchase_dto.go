package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea para crear/editar una orden de compra.
type PurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	Items      []PurchaseOrderItemRequest `json:"items"`
	Notes      string                     `json:"notes,omitempty"`
}

// UpdatePurchaseOrderItemsRequest body para PUT /api/purchase-orders/:id/items
// (solo órdenes en draft; el total se recalcula).
type UpdatePurchaseOrderItemsRequest struct {
	Items []PurchaseOrderItemRequest `json:"items"`
}

// PurchaseOrderItemResponse línea de una orden en respuestas.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Quantity         int64           `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ReceivedQuantity int64           `json:"received_quantity"`
}

// PurchaseOrderResponse representación de una orden de compra.
type PurchaseOrderResponse struct {
	ID          string                      `json:"id"`
	SupplierID  string                      `json:"supplier_id"`
	Status      string                      `json:"status"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	Notes       string                      `json:"notes,omitempty"`
	Items       []PurchaseOrderItemResponse `json:"items"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// PurchaseOrderListResponse listado paginado de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
