package memory

import (
	"sort"

	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/domain/repository"
)

// Asegura el cumplimiento de la interfaz.
var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación en memoria del historial de movimientos
// (append-only).
type StockMovementRepo struct {
	store   *Store
	locking bool
}

// NewStockMovementRepository construye el adaptador para uso fuera de transacción.
func NewStockMovementRepository(store *Store) *StockMovementRepo {
	return &StockMovementRepo{store: store, locking: true}
}

func (r *StockMovementRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Create agrega un movimiento al historial.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	defer r.lock()()
	r.store.movements = append(r.store.movements, cloneMovement(movement))
	return nil
}

// ListByStock devuelve los movimientos del stock ordenados por fecha de
// acción descendente; a igual fecha, el insertado más recientemente primero.
func (r *StockMovementRepo) ListByStock(stockID string) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var list []*entity.StockMovement
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		m := r.store.movements[i]
		if m.StockID == stockID {
			list = append(list, cloneMovement(m))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].ActionDate.After(list[j].ActionDate)
	})
	return list, nil
}
