package inventory

import (
	"context"

	"github.com/jhoicas/Vestuario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La verificación del producto, la del saldo,
// la mutación del nivel y el insert del movimiento comparten Commit/Rollback:
// o se aplican todos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
