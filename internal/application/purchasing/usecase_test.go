package purchasing_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vestuario-api/internal/application/dto"
	"github.com/jhoicas/Vestuario-api/internal/application/purchasing"
	"github.com/jhoicas/Vestuario-api/internal/domain"
	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
)

type fixture struct {
	suppliers *fakeSupplierRepo
	products  *fakeProductRepo
	orders    *fakeOrderRepo
	levels    *fakeLevelRepo
	movements *fakeMovementRepo
	uc        *purchasing.PurchaseOrderUseCase
}

func newFixture() *fixture {
	suppliers := newFakeSupplierRepo(&entity.Supplier{ID: "sup1", Name: "Textiles del Sur"})
	products := newFakeProductRepo(
		&entity.Product{ID: "pA", SKU: "CAM-001", Name: "Camisa oxford"},
		&entity.Product{ID: "pB", SKU: "PAN-002", Name: "Pantalón chino"},
	)
	orders := newFakeOrderRepo()
	levels := newFakeLevelRepo()
	movements := &fakeMovementRepo{}
	runner := &fakePurchaseTxRunner{
		orders: orders, levels: levels, movements: movements, products: products,
	}
	return &fixture{
		suppliers: suppliers,
		products:  products,
		orders:    orders,
		levels:    levels,
		movements: movements,
		uc:        purchasing.NewPurchaseOrderUseCase(runner, orders, suppliers, products),
	}
}

func (f *fixture) createOrder(t *testing.T) *dto.PurchaseOrderResponse {
	t.Helper()
	resp, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "sup1",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "pA", Quantity: 5, UnitPrice: decimal.NewFromFloat(19.90)},
			{ProductID: "pB", Quantity: 3, UnitPrice: decimal.NewFromFloat(45.50)},
		},
	})
	require.NoError(t, err)
	return resp
}

func (f *fixture) markOrdered(t *testing.T, orderID string) {
	t.Helper()
	_, err := f.uc.MarkOrdered(context.Background(), orderID)
	require.NoError(t, err)
}

// Create: draft, total congelado Σ(cantidad × precio), received_quantity en 0.
func TestCreate_TotalCongelado(t *testing.T) {
	f := newFixture()
	resp := f.createOrder(t)

	assert.Equal(t, "draft", resp.Status)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromFloat(236.00)),
		"total esperado 236.00, obtenido %s", resp.TotalAmount)
	require.Len(t, resp.Items, 2)
	for _, it := range resp.Items {
		assert.Equal(t, int64(0), it.ReceivedQuantity)
	}
	assert.Empty(t, f.movements.movements, "crear una orden no genera movimientos")
}

// Create con proveedor inexistente → ErrSupplierNotFound.
func TestCreate_ProveedorInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "fantasma",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "pA", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
}

// Create con producto inexistente en un ítem → ErrProductNotFound.
func TestCreate_ProductoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "sup1",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "fantasma", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Create con cantidad no positiva en un ítem → ErrInvalidQuantity.
func TestCreate_CantidadInvalida(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "sup1",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "pA", Quantity: 0, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// Receive desde ordered: exactamente un movimiento IN por ítem con
// reference_id = id de la orden, received_quantity = quantity y stock sumado
// en la ubicación por defecto.
func TestReceive_DesdeOrdered(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)
	f.markOrdered(t, order.ID)

	resp, err := f.uc.Receive(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "received", resp.Status)

	require.Len(t, f.movements.movements, 2,
		"dos ítems → exactamente dos movimientos IN")
	byProduct := map[string]*entity.StockMovement{}
	for _, m := range f.movements.movements {
		assert.Equal(t, entity.MovementIn, m.Type)
		require.NotNil(t, m.ReferenceID)
		assert.Equal(t, order.ID, *m.ReferenceID)
		assert.Equal(t, fmt.Sprintf("Received from PO #%s", order.ID), m.Notes)
		byProduct[m.ProductID] = m
	}
	assert.Equal(t, int64(5), byProduct["pA"].Quantity)
	assert.Equal(t, int64(3), byProduct["pB"].Quantity)

	for _, it := range resp.Items {
		assert.Equal(t, it.Quantity, it.ReceivedQuantity,
			"recepción todo-o-nada por ítem")
	}

	levelA, _ := f.levels.Get("pA", entity.DefaultLocation)
	levelB, _ := f.levels.Get("pB", entity.DefaultLocation)
	assert.Equal(t, int64(5), levelA.Quantity)
	assert.Equal(t, int64(3), levelB.Quantity)
}

// Receive solo es legal desde ordered: draft, received y cancelled fallan con
// ErrInvalidTransition y no generan movimientos.
func TestReceive_SoloDesdeOrdered(t *testing.T) {
	ctx := context.Background()

	t.Run("desde draft", func(t *testing.T) {
		f := newFixture()
		order := f.createOrder(t)
		_, err := f.uc.Receive(ctx, order.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Empty(t, f.movements.movements)
	})

	t.Run("desde received", func(t *testing.T) {
		f := newFixture()
		order := f.createOrder(t)
		f.markOrdered(t, order.ID)
		_, err := f.uc.Receive(ctx, order.ID)
		require.NoError(t, err)
		movCount := len(f.movements.movements)

		_, err = f.uc.Receive(ctx, order.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Len(t, f.movements.movements, movCount,
			"recibir dos veces no duplica movimientos")
	})

	t.Run("desde cancelled", func(t *testing.T) {
		f := newFixture()
		order := f.createOrder(t)
		_, err := f.uc.Cancel(ctx, order.ID)
		require.NoError(t, err)
		_, err = f.uc.Receive(ctx, order.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Empty(t, f.movements.movements)
	})
}

// Si un producto de la orden fue borrado, la recepción completa se aborta:
// ni movimientos, ni stock, ni cambio de estado.
func TestReceive_ProductoBorradoAbortaTodo(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)
	f.markOrdered(t, order.ID)
	require.NoError(t, f.products.Delete("pB"))

	_, err := f.uc.Receive(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.Empty(t, f.movements.movements, "no debe quedar ningún movimiento")
	levelA, _ := f.levels.Get("pA", entity.DefaultLocation)
	assert.Equal(t, int64(0), levelA.Quantity,
		"el IN del primer ítem debe revertirse con el rollback")

	stored, _ := f.orders.GetByID(order.ID)
	assert.Equal(t, entity.OrderOrdered, stored.Status)
	for _, it := range stored.Items {
		assert.Equal(t, int64(0), it.ReceivedQuantity)
	}
}

// Cancel es legal desde draft y ordered; desde estados terminales falla.
func TestCancel_Transiciones(t *testing.T) {
	ctx := context.Background()

	t.Run("desde draft", func(t *testing.T) {
		f := newFixture()
		order := f.createOrder(t)
		resp, err := f.uc.Cancel(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("desde ordered", func(t *testing.T) {
		f := newFixture()
		order := f.createOrder(t)
		f.markOrdered(t, order.ID)
		resp, err := f.uc.Cancel(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Empty(t, f.movements.movements, "cancelar no toca el stock")
	})

	t.Run("desde received", func(t *testing.T) {
		f := newFixture()
		order := f.createOrder(t)
		f.markOrdered(t, order.ID)
		_, err := f.uc.Receive(ctx, order.ID)
		require.NoError(t, err)
		_, err = f.uc.Cancel(ctx, order.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("desde cancelled", func(t *testing.T) {
		f := newFixture()
		order := f.createOrder(t)
		_, err := f.uc.Cancel(ctx, order.ID)
		require.NoError(t, err)
		_, err = f.uc.Cancel(ctx, order.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

// MarkOrdered solo avanza desde draft.
func TestMarkOrdered(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)

	resp, err := f.uc.MarkOrdered(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "ordered", resp.Status)

	_, err = f.uc.MarkOrdered(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Orden inexistente → ErrOrderNotFound en cualquier operación.
func TestOrdenInexistente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, "fantasma")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	_, err = f.uc.Cancel(ctx, "fantasma")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	_, err = f.uc.GetByID(ctx, "fantasma")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// UpdateItems solo en draft: reescribe ítems y recalcula el total; una vez
// ordered, el snapshot queda congelado.
func TestUpdateItems_SoloEnDraft(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)
	ctx := context.Background()

	resp, err := f.uc.UpdateItems(ctx, order.ID, dto.UpdatePurchaseOrderItemsRequest{
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "pA", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(200)),
		"el total debe recalcularse con los ítems nuevos")

	f.markOrdered(t, order.ID)
	_, err = f.uc.UpdateItems(ctx, order.ID, dto.UpdatePurchaseOrderItemsRequest{
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "pA", Quantity: 9, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, _ := f.orders.GetByID(order.ID)
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(200)),
		"el total congelado no debe cambiar después de ordered")
}
