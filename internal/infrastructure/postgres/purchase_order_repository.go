package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
	"github.com/jhoicas/Vestuario-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de órdenes de compra. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden y sus ítems.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, status, total_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, string(order.Status), order.TotalAmount,
		order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	if err := r.insertItems(order.ID, order.Items); err != nil {
		return err
	}
	return nil
}

func (r *PurchaseOrderRepo) insertItems(orderID string, items []entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, order_id, product_id, quantity, unit_price, received_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, it := range items {
		_, err := r.q.Exec(context.Background(), query,
			it.ID, orderID, it.ProductID, it.Quantity, it.UnitPrice, it.ReceivedQuantity,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) loadItems(orderID string) ([]entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, received_quantity
		FROM purchase_order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load purchase order items: %w", err)
	}
	defer rows.Close()
	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.ReceivedQuantity); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PurchaseOrderRepo) getByID(id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, status, total_amount, notes, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.SupplierID, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.loadItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// GetByID obtiene la orden con sus ítems. nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) para que
// dos receive concurrentes no lean el mismo estado.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.getByID(id, true)
}

// UpdateStatus cambia el estado de la orden. La validación de transición es
// responsabilidad del caso de uso.
func (r *PurchaseOrderRepo) UpdateStatus(id string, status entity.OrderStatus) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// ReplaceItems reescribe los ítems de la orden y su total congelado.
// Solo lo invoca el caso de uso cuando la orden sigue en draft.
func (r *PurchaseOrderRepo) ReplaceItems(order *entity.PurchaseOrder) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM purchase_order_items WHERE order_id = $1`, order.ID)
	if err != nil {
		return fmt.Errorf("delete purchase order items: %w", err)
	}
	if err := r.insertItems(order.ID, order.Items); err != nil {
		return err
	}
	_, err = r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET total_amount = $2, updated_at = now() WHERE id = $1`,
		order.ID, order.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("update purchase order total: %w", err)
	}
	return nil
}

// UpdateItemReceived fija la cantidad recibida de un ítem (todo o nada al recibir).
func (r *PurchaseOrderRepo) UpdateItemReceived(itemID string, receivedQuantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_order_items SET received_quantity = $2 WHERE id = $1`,
		itemID, receivedQuantity,
	)
	if err != nil {
		return fmt.Errorf("update purchase order item received: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) list(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		items, err := r.loadItems(o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return list, nil
}

// List lista órdenes (más recientes primero) con sus ítems.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(`
		SELECT id, supplier_id, status, total_amount, notes, created_at, updated_at
		FROM purchase_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListBySupplier lista órdenes de un proveedor (más recientes primero).
func (r *PurchaseOrderRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(`
		SELECT id, supplier_id, status, total_amount, notes, created_at, updated_at
		FROM purchase_orders WHERE supplier_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		supplierID, limit, offset)
}
