package purchasing

import (
	"context"

	"github.com/jhoicas/Vestuario-api/internal/domain/repository"
)

// PurchaseTxRunner ejecuta una función dentro de una transacción de BD con
// los repositorios de órdenes y del ledger atados a esa tx. El receive de una
// orden (movimientos por ítem, received_quantity y cambio de estado) comparte
// un único Commit: una recepción parcial nunca es observable.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		levelRepo repository.StockLevelRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
