package repository

import (
	"context"

	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos.
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto de persistencia para movimientos.
// Solo inserta y lista: los movimientos son inmutables una vez escritos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
