package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vestuario-api/internal/application/dto"
	"github.com/jhoicas/Vestuario-api/internal/application/inventory"
	"github.com/jhoicas/Vestuario-api/internal/domain"
	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
	"github.com/jhoicas/Vestuario-api/internal/domain/repository"
)

// PurchaseOrderUseCase gobierna el ciclo de vida de las órdenes de compra
// (draft → ordered → received/cancelled) y dispara el ledger al recibir.
type PurchaseOrderUseCase struct {
	txRunner     PurchaseTxRunner
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner PurchaseTxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
	}
}

// Create crea una orden en draft con sus ítems y el total congelado
// (Σ cantidad × precio unitario). Sin efecto sobre el stock.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrSupplierNotFound
	}

	now := time.Now()
	orderID := uuid.New().String()
	items := make([]entity.PurchaseOrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if it.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		items = append(items, entity.PurchaseOrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	order := &entity.PurchaseOrder{
		ID:          orderID,
		SupplierID:  in.SupplierID,
		Status:      entity.OrderDraft,
		TotalAmount: entity.ComputeTotal(items),
		Notes:       in.Notes,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Orden e ítems se insertan en una sola transacción.
	err = uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.StockLevelRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// UpdateItems reescribe los ítems de una orden en draft y recalcula el total.
// Una vez la orden sale de draft, ítems y total quedan congelados.
func (uc *PurchaseOrderUseCase) UpdateItems(ctx context.Context, orderID string, in dto.UpdatePurchaseOrderItemsRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.PurchaseOrder
	err := uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.StockLevelRepository,
		_ repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if order.Status != entity.OrderDraft {
			return domain.ErrInvalidTransition
		}
		items := make([]entity.PurchaseOrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			if it.Quantity <= 0 {
				return domain.ErrInvalidQuantity
			}
			if it.UnitPrice.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			product, err := productRepo.GetByID(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			items = append(items, entity.PurchaseOrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
		order.Items = items
		order.TotalAmount = entity.ComputeTotal(items)
		order.UpdatedAt = time.Now()
		if err := orderRepo.ReplaceItems(order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(updated), nil
}

// MarkOrdered pasa la orden de draft a ordered. Sin efecto sobre el stock.
func (uc *PurchaseOrderUseCase) MarkOrdered(ctx context.Context, orderID string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, orderID, entity.OrderOrdered)
}

// Cancel pasa la orden (draft u ordered) a cancelled. Sin efecto sobre el stock.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, orderID string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, orderID, entity.OrderCancelled)
}

func (uc *PurchaseOrderUseCase) transition(ctx context.Context, orderID string, to entity.OrderStatus) (*dto.PurchaseOrderResponse, error) {
	var updated *entity.PurchaseOrder
	err := uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.StockLevelRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if !order.Status.CanTransition(to) {
			return domain.ErrInvalidTransition
		}
		if err := orderRepo.UpdateStatus(order.ID, to); err != nil {
			return err
		}
		order.Status = to
		order.UpdatedAt = time.Now()
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(updated), nil
}

// Receive recibe una orden (solo legal desde ordered): por cada ítem aplica
// un movimiento IN en la ubicación por defecto con reference_id = id de la
// orden, marca received_quantity = quantity y pasa la orden a received.
// Todo dentro de una transacción: si un ítem falla, nada queda aplicado.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, orderID string) (*dto.PurchaseOrderResponse, error) {
	var updated *entity.PurchaseOrder
	err := uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		levelRepo repository.StockLevelRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if !order.Status.CanTransition(entity.OrderReceived) {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		for i := range order.Items {
			item := &order.Items[i]
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				// El producto pudo borrarse después de crear la orden;
				// aborta la recepción completa.
				return domain.ErrProductNotFound
			}
			movement := &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				Type:        entity.MovementIn,
				Quantity:    item.Quantity,
				ReferenceID: &order.ID,
				Notes:       fmt.Sprintf("Received from PO #%s", order.ID),
				CreatedAt:   now,
			}
			if err := inventory.ApplyMovementInTx(levelRepo, movementRepo, movement, entity.DefaultLocation); err != nil {
				return err
			}
			if err := orderRepo.UpdateItemReceived(item.ID, item.Quantity); err != nil {
				return err
			}
			item.ReceivedQuantity = item.Quantity
		}

		if err := orderRepo.UpdateStatus(order.ID, entity.OrderReceived); err != nil {
			return err
		}
		order.Status = entity.OrderReceived
		order.UpdatedAt = now
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(updated), nil
}

// GetByID obtiene una orden con sus ítems.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, orderID string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return toOrderResponse(order), nil
}

// List lista órdenes (más recientes primero) con paginación.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	orders, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toOrderListResponse(orders, limit, offset), nil
}

// ListBySupplier lista las órdenes de un proveedor.
func (uc *PurchaseOrderUseCase) ListBySupplier(ctx context.Context, supplierID string, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	orders, err := uc.orderRepo.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toOrderListResponse(orders, limit, offset), nil
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.PurchaseOrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			ReceivedQuantity: it.ReceivedQuantity,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:          o.ID,
		SupplierID:  o.SupplierID,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		Notes:       o.Notes,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOrderListResponse(orders []*entity.PurchaseOrder, limit, offset int) *dto.PurchaseOrderListResponse {
	items := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
