package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hemovida/hemostock-api/internal/domain"
	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/domain/repository"
)

// ProcessBulkExit registra una salida de unidades de un lote concreto, sobre
// varios tipos sanguíneos en un solo request. La validación es en dos fases:
// primero se verifica cada línea pedida (línea presente en el lote, cantidad
// suficiente en el lote y en el stock de la empresa) y solo si todas pasan se
// aplican los descuentos y se registran los movimientos. Un faltante en
// cualquier tipo aborta el request completo sin efectos.
func (l *Ledger) ProcessBulkExit(ctx context.Context, companyID, batchID string, quantities map[entity.BloodType]int, actionBy string) (*entity.Batch, error) {
	if batchID == "" {
		return nil, l.reject(domain.ErrInvalidInput)
	}
	requested, err := requestedTypes(quantities)
	if err != nil {
		return nil, l.reject(err)
	}
	if err := l.checkCompany(companyID); err != nil {
		return nil, l.reject(err)
	}

	var result *entity.Batch
	err = l.runTx(ctx, func(
		stockRepo repository.StockRepository,
		batchRepo repository.BatchRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		result = nil

		batch, err := batchRepo.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.CompanyID != companyID {
			return domain.ErrForbidden
		}

		// Fase 1: validar todas las líneas pedidas antes de mutar nada.
		// GetByCompanyAndTypeForUpdate toma los bloqueos en orden canónico.
		stocks := make(map[entity.BloodType]*entity.Stock, len(requested))
		for _, bt := range requested {
			qty := quantities[bt]

			line := batch.Line(bt)
			if line == nil {
				return domain.ErrBloodTypeNotInBatch
			}
			if line.Quantity < qty {
				return domain.ErrInsufficientBatchStock
			}

			s, err := stockRepo.GetByCompanyAndTypeForUpdate(companyID, bt)
			if err != nil {
				return err
			}
			if s == nil || s.Quantity < qty {
				return domain.ErrInsufficientStock
			}
			stocks[bt] = s
		}

		// Fase 2: aplicar todos los descuentos y registrar los movimientos.
		now := time.Now()
		for _, bt := range requested {
			qty := quantities[bt]

			line := batch.Line(bt)
			line.Quantity -= qty

			s := stocks[bt]
			before := s.Quantity
			after := before - qty
			s.Quantity = after
			s.UpdatedAt = now
			if err := stockRepo.Upsert(s); err != nil {
				return err
			}

			mov := &entity.StockMovement{
				ID:             uuid.New().String(),
				StockID:        s.ID,
				Movement:       -qty,
				QuantityBefore: before,
				QuantityAfter:  after,
				ActionBy:       actionBy,
				Notes:          "Salida por lote " + batch.BatchCode,
				ActionDate:     now,
			}
			if err := movementRepo.Create(mov); err != nil {
				return err
			}
		}

		if err := batchRepo.Save(batch); err != nil {
			return err
		}
		result = batch
		return nil
	})
	if err != nil {
		return nil, l.reject(err)
	}

	for _, bt := range requested {
		l.metrics.MovementApplied(-quantities[bt])
	}
	l.log.Debug().
		Str("company_id", companyID).
		Str("batch_id", batchID).
		Int("lines", len(requested)).
		Str("action_by", actionBy).
		Msg("salida por lote registrada")
	return result, nil
}
