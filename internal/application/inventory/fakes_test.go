package inventory_test

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jhoicas/Vestuario-api/internal/application/inventory"
	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
	"github.com/jhoicas/Vestuario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de repositorio
// ──────────────────────────────────────────────────────────────────────────────

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

func (r *fakeProductRepo) Create(p *entity.Product) error  { r.byID[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.byID[id], nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.byID[p.ID] = p; return nil }
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.byID, id); return nil }

type fakeLevelRepo struct {
	byKey    map[string]*entity.StockLevel
	products *fakeProductRepo // para LowStockAlerts
}

func newFakeLevelRepo(products *fakeProductRepo) *fakeLevelRepo {
	return &fakeLevelRepo{byKey: map[string]*entity.StockLevel{}, products: products}
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
	// Par nunca visto: nivel en cero con ID asignado, listo para Upsert
	// (creación perezosa), igual que el adaptador de PostgreSQL.
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

func (r *fakeLevelRepo) List(_ context.Context, filter repository.StockLevelFilter) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, l := range r.byKey {
		if filter.ProductID != "" && l.ProductID != filter.ProductID {
			continue
		}
		if filter.Location != "" && l.Location != filter.Location {
			continue
		}
		if filter.LowStockOnly {
			p := r.products.byID[l.ProductID]
			if p == nil || l.Quantity > p.MinStock {
				continue
			}
		}
		out = append(out, copyLevel(l))
	}
	return out, nil
}

func (r *fakeLevelRepo) LowStockAlerts(context.Context) ([]repository.LowStockAlert, error) {
	var out []repository.LowStockAlert
	for _, p := range r.products.byID {
		var total int64
		for _, l := range r.byKey {
			if l.ProductID == p.ID {
				total += l.Quantity
			}
		}
		if total <= p.MinStock {
			out = append(out, repository.LowStockAlert{
				ProductID:    p.ID,
				ProductName:  p.Name,
				MinStock:     p.MinStock,
				CurrentStock: total,
			})
		}
	}
	return out, nil
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

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// fakeTxRunner emula la atomicidad de la transacción: si fn falla, el estado
// de los repositorios vuelve al snapshot previo (rollback). beforeRun, si está
// seteado, corre justo antes de fn para simular escrituras concurrentes que
// se cuelan entre la llamada al caso de uso y el cuerpo de la transacción.
type fakeTxRunner struct {
	levels    *fakeLevelRepo
	movements *fakeMovementRepo
	products  *fakeProductRepo
	beforeRun func()
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	if r.beforeRun != nil {
		r.beforeRun()
	}
	levelSnap := r.levels.snapshot()
	movCount := len(r.movements.movements)
	if err := fn(r.levels, r.movements, r.products); err != nil {
		r.levels.byKey = levelSnap
		r.movements.movements = r.movements.movements[:movCount]
		return err
	}
	return nil
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)
