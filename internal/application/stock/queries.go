package stock

import (
	"context"

	"github.com/hemovida/hemostock-api/internal/domain"
	"github.com/hemovida/hemostock-api/internal/domain/entity"
)

// GetStock obtiene una fila de stock por ID.
func (l *Ledger) GetStock(ctx context.Context, stockID string) (*entity.Stock, error) {
	if stockID == "" {
		return nil, domain.ErrInvalidInput
	}
	s, err := l.stockRepo.GetByID(stockID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// ListStockByCompany lista el stock actual de una empresa (todos los tipos
// sanguíneos ya registrados).
func (l *Ledger) ListStockByCompany(ctx context.Context, companyID string) ([]*entity.Stock, error) {
	if err := l.checkCompany(companyID); err != nil {
		return nil, err
	}
	return l.stockRepo.ListByCompany(companyID)
}

// ListAvailableBatches lista los lotes de la empresa con al menos una línea
// con unidades disponibles (para poblar un selector de salida, por ejemplo).
// Solo lectura; no toma bloqueos más allá de la lectura consistente del store.
func (l *Ledger) ListAvailableBatches(ctx context.Context, companyID string) ([]*entity.Batch, error) {
	if err := l.checkCompany(companyID); err != nil {
		return nil, err
	}
	return l.batchRepo.ListWithAvailability(companyID)
}

// GetMovementHistory devuelve el historial de movimientos de un stock,
// ordenado por fecha de acción descendente. Un stock sin movimientos (o
// inexistente) devuelve lista vacía.
func (l *Ledger) GetMovementHistory(ctx context.Context, stockID string) ([]*entity.StockMovement, error) {
	if stockID == "" {
		return nil, domain.ErrInvalidInput
	}
	return l.movementRepo.ListByStock(stockID)
}
