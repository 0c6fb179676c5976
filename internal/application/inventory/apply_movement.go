package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Vestuario-api/internal/application/dto"
	"github.com/jhoicas/Vestuario-api/internal/domain"
	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
	"github.com/jhoicas/Vestuario-api/internal/domain/ledger"
	"github.com/jhoicas/Vestuario-api/internal/domain/repository"
)

// ApplyMovementUseCase aplica movimientos de inventario (in, out, adjust) de
// forma transaccional: bloquea la fila del nivel (SELECT FOR UPDATE), calcula
// el nuevo saldo con el ledger y registra el movimiento inmutable en la misma
// transacción.
type ApplyMovementUseCase struct {
	txRunner TxRunner
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para aplicar un movimiento.
// Location vacío usa entity.DefaultLocation.
type MovementInput struct {
	ProductID   string
	Location    string
	Type        entity.MovementType
	Quantity    int64
	ReferenceID *string
	Notes       string
}

// ApplyMovement valida el movimiento, ejecuta la transacción y devuelve el
// movimiento registrado. Errores: ErrProductNotFound, ErrInvalidQuantity,
// ErrInsufficientStock, ErrInvalidInput.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*dto.StockMovementResponse, error) {
	if input.ProductID == "" || !input.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if input.Location == "" {
		input.Location = entity.DefaultLocation
	}

	now := time.Now()
	movement := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		ReferenceID: input.ReferenceID,
		Notes:       input.Notes,
		CreatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Producto verificado dentro de la tx: un delete concurrente entre la
		// verificación y el Commit dejaría un movimiento huérfano.
		product, err := productRepo.GetByID(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		// Bloquea la fila del nivel para que la verificación no lea datos
		// viejos frente a movimientos concurrentes del mismo par.
		level, err := levelRepo.GetForUpdate(input.ProductID, input.Location)
		if err != nil {
			return err
		}
		newQty, err := ledger.Apply(level.Quantity, input.Type, input.Quantity)
		if err != nil {
			return err
		}
		level.Quantity = newQty
		level.UpdatedAt = now
		if err := levelRepo.Upsert(level); err != nil {
			return err
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// ApplyMovementInTx aplica un movimiento usando repositorios ya atados a la
// transacción del caller (lo usa el receive de órdenes de compra para que
// todos los ítems y el cambio de estado compartan el mismo Commit).
func ApplyMovementInTx(
	levelRepo repository.StockLevelRepository,
	movementRepo repository.StockMovementRepository,
	movement *entity.StockMovement,
	location string,
) error {
	level, err := levelRepo.GetForUpdate(movement.ProductID, location)
	if err != nil {
		return err
	}
	newQty, err := ledger.Apply(level.Quantity, movement.Type, movement.Quantity)
	if err != nil {
		return err
	}
	level.Quantity = newQty
	level.UpdatedAt = movement.CreatedAt
	if err := levelRepo.Upsert(level); err != nil {
		return err
	}
	return movementRepo.Create(movement)
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	if m == nil {
		return nil
	}
	return &dto.StockMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		ReferenceID: m.ReferenceID,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}
