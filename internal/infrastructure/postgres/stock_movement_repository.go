package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del historial de movimientos sobre
// PostgreSQL (usable con pool o tx). La tabla es append-only: no hay UPDATE
// ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movement (id, stock_id, movement, quantity_before, quantity_after, action_by, notes, action_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.StockID, movement.Movement,
		movement.QuantityBefore, movement.QuantityAfter,
		movement.ActionBy, movement.Notes, movement.ActionDate,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByStock devuelve el historial de un stock ordenado por fecha de acción
// descendente.
func (r *StockMovementRepo) ListByStock(stockID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, stock_id, movement, quantity_before, quantity_after, action_by, notes, action_date
		FROM stock_movement WHERE stock_id = $1
		ORDER BY action_date DESC`
	rows, err := r.q.Query(context.Background(), query, stockID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.StockID, &m.Movement,
			&m.QuantityBefore, &m.QuantityAfter,
			&m.ActionBy, &m.Notes, &m.ActionDate); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
