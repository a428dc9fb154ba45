package stock

import (
	"context"

	"github.com/hemovida/hemostock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del ledger: o se
// confirman todas las escrituras del callback o ninguna. El callback debe
// poder re-ejecutarse completo si la transacción se reintenta por conflicto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		batchRepo repository.BatchRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
