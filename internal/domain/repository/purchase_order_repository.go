package repository

import "github.com/jhoicas/Vestuario-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra y sus ítems.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) para
	// que dos receive concurrentes no lean el mismo estado.
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id string, status entity.OrderStatus) error
	// ReplaceItems reescribe los ítems de una orden en draft y su total.
	ReplaceItems(order *entity.PurchaseOrder) error
	UpdateItemReceived(itemID string, receivedQuantity int64) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
