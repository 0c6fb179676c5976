package purchasing_test

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jhoicas/Vestuario-api/internal/application/purchasing"
	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
	"github.com/jhoicas/Vestuario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos que usa el caso de uso de compras
// ──────────────────────────────────────────────────────────────────────────────

type fakeSupplierRepo struct {
	byID map[string]*entity.Supplier
}

func newFakeSupplierRepo(suppliers ...*entity.Supplier) *fakeSupplierRepo {
	r := &fakeSupplierRepo{byID: map[string]*entity.Supplier{}}
	for _, s := range suppliers {
		r.byID[s.ID] = s
	}
	return r
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.byID[s.ID] = s; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.byID[id], nil
}
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error { r.byID[s.ID] = s; return nil }
func (r *fakeSupplierRepo) List(int, int) ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, nil
}
func (r *fakeSupplierRepo) Delete(id string) error { delete(r.byID, id); return nil }

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: map[string]*entity.Product{}}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.byID[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.byID[id], nil
}
func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error           { r.byID[p.ID] = p; return nil }
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.byID, id); return nil }

type fakeLevelRepo struct {
	byKey map[string]*entity.StockLevel
}

func newFakeLevelRepo() *fakeLevelRepo {
	return &fakeLevelRepo{byKey: map[string]*entity.StockLevel{}}
}

func levelKey(productID, location string) string { return productID + "|" + location }

func copyLevel(l *entity.StockLevel) *entity.StockLevel {
	c := *l
	return &c
}

func (r *fakeLevelRepo) Get(productID, location string) (*entity.StockLevel, error) {
	return r.GetForUpdate(productID, location)
}

func (r *fakeLevelRepo) GetForUpdate(productID, location string) (*entity.StockLevel, error) {
	if l, ok := r.byKey[levelKey(productID, location)]; ok {
		return copyLevel(l), nil
	}
	// Nivel perezoso con ID asignado, igual que el adaptador de PostgreSQL.
	return &entity.StockLevel{
		ID:        uuid.New().String(),
		ProductID: productID,
		Location:  location,
		Quantity:  0,
	}, nil
}

func (r *fakeLevelRepo) Upsert(level *entity.StockLevel) error {
	key := levelKey(level.ProductID, level.Location)
	if existing, ok := r.byKey[key]; ok {
		// ON CONFLICT DO UPDATE no cambia la PK de la fila existente.
		level.ID = existing.ID
	} else if level.ID == "" {
		return errors.New("upsert stock level: id vacío")
	}
	r.byKey[key] = copyLevel(level)
	return nil
}

func (r *fakeLevelRepo) List(context.Context, repository.StockLevelFilter) ([]*entity.StockLevel, error) {
	return nil, nil
}

func (r *fakeLevelRepo) LowStockAlerts(context.Context) ([]repository.LowStockAlert, error) {
	return nil, nil
}

func (r *fakeLevelRepo) snapshot() map[string]*entity.StockLevel {
	snap := make(map[string]*entity.StockLevel, len(r.byKey))
	for k, v := range r.byKey {
		snap[k] = copyLevel(v)
	}
	return snap
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	c := *m
	r.movements = append(r.movements, &c)
	return nil
}

func (r *fakeMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }

func (r *fakeMovementRepo) List(context.Context, repository.MovementFilter) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

type fakeOrderRepo struct {
	byID map[string]*entity.PurchaseOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byID: map[string]*entity.PurchaseOrder{}}
}

func copyOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *o
	c.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	return &c
}

func (r *fakeOrderRepo) Create(order *entity.PurchaseOrder) error {
	r.byID[order.ID] = copyOrder(order)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if o, ok := r.byID[id]; ok {
		return copyOrder(o), nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) UpdateStatus(id string, status entity.OrderStatus) error {
	if o, ok := r.byID[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) ReplaceItems(order *entity.PurchaseOrder) error {
	r.byID[order.ID] = copyOrder(order)
	return nil
}

func (r *fakeOrderRepo) UpdateItemReceived(itemID string, receivedQuantity int64) error {
	for _, o := range r.byID {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				o.Items[i].ReceivedQuantity = receivedQuantity
			}
		}
	}
	return nil
}

func (r *fakeOrderRepo) List(int, int) ([]*entity.PurchaseOrder, error) {
	out := make([]*entity.PurchaseOrder, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, copyOrder(o))
	}
	return out, nil
}

func (r *fakeOrderRepo) ListBySupplier(supplierID string, _, _ int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.byID {
		if o.SupplierID == supplierID {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) snapshot() map[string]*entity.PurchaseOrder {
	snap := make(map[string]*entity.PurchaseOrder, len(r.byID))
	for k, v := range r.byID {
		snap[k] = copyOrder(v)
	}
	return snap
}

// fakePurchaseTxRunner emula la atomicidad: si fn falla, órdenes, niveles y
// movimientos vuelven al snapshot previo (rollback).
type fakePurchaseTxRunner struct {
	orders    *fakeOrderRepo
	levels    *fakeLevelRepo
	movements *fakeMovementRepo
	products  *fakeProductRepo
}

func (r *fakePurchaseTxRunner) RunPurchase(_ context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	levelRepo repository.StockLevelRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	orderSnap := r.orders.snapshot()
	levelSnap := r.levels.snapshot()
	movCount := len(r.movements.movements)
	if err := fn(r.orders, r.levels, r.movements, r.products); err != nil {
		r.orders.byID = orderSnap
		r.levels.byKey = levelSnap
		r.movements.movements = r.movements.movements[:movCount]
		return err
	}
	return nil
}

var _ purchasing.PurchaseTxRunner = (*fakePurchaseTxRunner)(nil)
