package repository

import "github.com/hemovida/hemostock-api/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para el historial
// de movimientos (DIP). Es append-only: los movimientos nunca se actualizan
// ni se eliminan.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByStock devuelve el historial de un stock ordenado por fecha de
	// acción descendente.
	ListByStock(stockID string) ([]*entity.StockMovement, error)
}
