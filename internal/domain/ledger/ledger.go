// Package ledger contiene la aritmética del libro de inventario: cómo un
// movimiento transforma el saldo de un StockLevel. Es la única fuente del
// invariante de no-negatividad; los casos de uso aplican el resultado dentro
// de una transacción junto con el registro del movimiento.
package ledger

import (
	"github.com/jhoicas/Vestuario-api/internal/domain"
	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
)

// Apply calcula el nuevo saldo al aplicar un movimiento sobre el saldo actual.
//   - in:     current + qty (qty >= 0)
//   - out:    current - qty (qty > 0); ErrInsufficientStock si current < qty
//   - adjust: qty (valor absoluto, no delta; qty >= 0)
//
// No muta nada: el caller persiste el saldo devuelto y el movimiento en la
// misma transacción.
func Apply(current int64, t entity.MovementType, qty int64) (int64, error) {
	switch t {
	case entity.MovementIn:
		if qty < 0 {
			return 0, domain.ErrInvalidQuantity
		}
		return current + qty, nil
	case entity.MovementOut:
		if qty <= 0 {
			return 0, domain.ErrInvalidQuantity
		}
		if current < qty {
			return 0, domain.ErrInsufficientStock
		}
		return current - qty, nil
	case entity.MovementAdjust:
		if qty < 0 {
			return 0, domain.ErrInvalidQuantity
		}
		return qty, nil
	}
	return 0, domain.ErrInvalidInput
}
