package memory

import (
	"context"

	"github.com/hemovida/hemostock-api/internal/application/stock"
	"github.com/hemovida/hemostock-api/internal/domain/repository"
)

// Asegura que TxRunner implementa stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks como transacción sobre el Store: toma el mutex
// global (serializa a todos los escritores), guarda un snapshot y lo restaura
// si el callback falla. Dentro del callback los repos operan sin locking
// propio porque el runner ya posee el mutex.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a la "transacción"; restaura el snapshot si
// fn devuelve error (rollback) y lo propaga.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	batchRepo repository.BatchRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	stockRepo := &StockRepo{store: r.store}
	batchRepo := &BatchRepo{store: r.store}
	movementRepo := &StockMovementRepo{store: r.store}

	if err := fn(stockRepo, batchRepo, movementRepo); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
