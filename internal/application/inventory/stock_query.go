package inventory

import (
	"context"

	"github.com/jhoicas/Vestuario-api/internal/application/dto"
	"github.com/jhoicas/Vestuario-api/internal/domain"
	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
	"github.com/jhoicas/Vestuario-api/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre niveles, movimientos y
// alertas de stock bajo.
type StockQueryUseCase struct {
	levelRepo    repository.StockLevelRepository
	movementRepo repository.StockMovementRepository
}

// NewStockQueryUseCase construye el caso de uso de consultas.
func NewStockQueryUseCase(
	levelRepo repository.StockLevelRepository,
	movementRepo repository.StockMovementRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{levelRepo: levelRepo, movementRepo: movementRepo}
}

// ListStockLevels lista niveles de stock con filtros opcionales.
func (uc *StockQueryUseCase) ListStockLevels(ctx context.Context, filter repository.StockLevelFilter) ([]dto.StockLevelResponse, error) {
	levels, err := uc.levelRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.StockLevelResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Location:  l.Location,
			Quantity:  l.Quantity,
			UpdatedAt: l.UpdatedAt,
		})
	}
	return out, nil
}

// ListMovements lista movimientos (más recientes primero) con filtros.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]dto.StockMovementResponse, error) {
	movements, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// GetMovement obtiene un movimiento por ID.
func (uc *StockQueryUseCase) GetMovement(ctx context.Context, id string) (*dto.StockMovementResponse, error) {
	m, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(m), nil
}

// LowStockAlerts devuelve los productos cuyo stock agregado (sumando todas
// las ubicaciones) está en o bajo su min_stock.
func (uc *StockQueryUseCase) LowStockAlerts(ctx context.Context) (*dto.LowStockAlertsResponse, error) {
	alerts, err := uc.levelRepo.LowStockAlerts(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, dto.LowStockAlertDTO{
			ProductID:    a.ProductID,
			ProductName:  a.ProductName,
			MinStock:     a.MinStock,
			CurrentStock: a.CurrentStock,
		})
	}
	return &dto.LowStockAlertsResponse{Alerts: items, Count: len(items)}, nil
}

// ParseMovementType convierte el tipo recibido por HTTP al tipo cerrado.
// Devuelve false si no pertenece al conjunto {in, out, adjust}.
func ParseMovementType(s string) (entity.MovementType, bool) {
	t := entity.MovementType(s)
	return t, t.Valid()
}
