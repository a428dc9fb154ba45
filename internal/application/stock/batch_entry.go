package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hemovida/hemostock-api/internal/domain"
	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/domain/repository"
)

// ProcessBatchEntry registra una entrada de unidades por lote. Busca o crea el
// lote por (empresa, código): reenviar el mismo código funde en el lote
// existente, pero las cantidades siempre se suman (cada llamada representa una
// recepción física distinta). Por cada tipo sanguíneo con cantidad positiva
// incrementa la línea del lote y el stock de la empresa, y registra un
// movimiento; todo dentro de una sola transacción.
func (l *Ledger) ProcessBatchEntry(ctx context.Context, companyID, batchCode string, quantities map[entity.BloodType]int, actionBy string) (*entity.Batch, error) {
	if batchCode == "" {
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
		now := time.Now()

		batch, err := batchRepo.GetByCompanyAndCodeForUpdate(companyID, batchCode)
		if err != nil {
			return err
		}
		if batch == nil {
			batch = &entity.Batch{
				ID:        uuid.New().String(),
				CompanyID: companyID,
				BatchCode: batchCode,
				EntryDate: now,
			}
		}

		for _, bt := range requested {
			qty := quantities[bt]

			line := batch.Line(bt)
			if line == nil {
				batch.Lines = append(batch.Lines, entity.BatchLine{
					ID:        uuid.New().String(),
					BloodType: bt,
				})
				line = &batch.Lines[len(batch.Lines)-1]
			}
			line.Quantity += qty

			s, err := stockRepo.GetByCompanyAndTypeForUpdate(companyID, bt)
			if err != nil {
				return err
			}
			if s == nil {
				// Primera entrada de este tipo sanguíneo: crear la fila en cero
				s = &entity.Stock{
					ID:        uuid.New().String(),
					CompanyID: companyID,
					BloodType: bt,
				}
			}

			// Capturar la cantidad previa antes de cualquier mutación
			before := s.Quantity
			after := before + qty
			s.Quantity = after
			s.UpdatedAt = now
			if err := stockRepo.Upsert(s); err != nil {
				return err
			}

			mov := &entity.StockMovement{
				ID:             uuid.New().String(),
				StockID:        s.ID,
				Movement:       qty,
				QuantityBefore: before,
				QuantityAfter:  after,
				ActionBy:       actionBy,
				Notes:          "Entrada por lote " + batchCode,
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
		l.metrics.MovementApplied(quantities[bt])
	}
	l.log.Debug().
		Str("company_id", companyID).
		Str("batch_code", batchCode).
		Int("lines", len(requested)).
		Str("action_by", actionBy).
		Msg("entrada por lote registrada")
	return result, nil
}
