package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hemovida/hemostock-api/internal/domain"
	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/domain/repository"
	"github.com/hemovida/hemostock-api/pkg/logger"
	"github.com/hemovida/hemostock-api/pkg/metrics"
)

// defaultTxRetries reintentos ante ErrConflict si la configuración no indica otro valor.
const defaultTxRetries = 3

// Ledger orquesta los movimientos de stock de sangre: ajustes puntuales,
// entradas por lote y salidas masivas por lote. Es el único escritor de Stock,
// BatchLine y StockMovement; cada operación mutadora corre completa dentro de
// una transacción (Commit/Rollback a cargo del TxRunner) con bloqueo de fila
// (SELECT FOR UPDATE) sobre las filas de stock tocadas.
type Ledger struct {
	txRunner     TxRunner
	companyRepo  repository.CompanyRepository
	stockRepo    repository.StockRepository
	batchRepo    repository.BatchRepository
	movementRepo repository.StockMovementRepository

	log       *logger.Logger
	metrics   *metrics.Recorder
	txRetries int
}

// Config opciones del ledger. Logger y Metrics nil se reemplazan por no-ops;
// TxRetries <= 0 usa el valor por defecto.
type Config struct {
	Logger    *logger.Logger
	Metrics   *metrics.Recorder
	TxRetries int
}

// NewLedger construye el ledger. Los repositorios sueltos (fuera del TxRunner)
// se usan para lecturas y validaciones de existencia.
func NewLedger(
	txRunner TxRunner,
	companyRepo repository.CompanyRepository,
	stockRepo repository.StockRepository,
	batchRepo repository.BatchRepository,
	movementRepo repository.StockMovementRepository,
	cfg Config,
) *Ledger {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop()
	}
	if cfg.TxRetries <= 0 {
		cfg.TxRetries = defaultTxRetries
	}
	return &Ledger{
		txRunner:     txRunner,
		companyRepo:  companyRepo,
		stockRepo:    stockRepo,
		batchRepo:    batchRepo,
		movementRepo: movementRepo,
		log:          cfg.Logger,
		metrics:      cfg.Metrics,
		txRetries:    cfg.TxRetries,
	}
}

// Adjust aplica un ajuste manual sobre una fila de stock existente: suma delta
// (positivo o negativo) y registra exactamente un movimiento con la cantidad
// anterior y posterior, todo en la misma transacción. Si la cantidad quedara
// negativa devuelve ErrInsufficientStock sin mutar nada.
func (l *Ledger) Adjust(ctx context.Context, stockID string, delta int, actionBy, notes string) (*entity.Stock, error) {
	if stockID == "" || delta == 0 {
		return nil, l.reject(domain.ErrInvalidInput)
	}

	var updated *entity.Stock
	err := l.runTx(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.BatchRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		updated = nil

		s, err := stockRepo.GetByIDForUpdate(stockID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}

		// Capturar la cantidad previa antes de cualquier mutación
		before := s.Quantity
		after := before + delta
		if after < 0 {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		s.Quantity = after
		s.UpdatedAt = now
		if err := stockRepo.Upsert(s); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			StockID:        s.ID,
			Movement:       delta,
			QuantityBefore: before,
			QuantityAfter:  after,
			ActionBy:       actionBy,
			Notes:          notes,
			ActionDate:     now,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, l.reject(err)
	}

	l.metrics.MovementApplied(delta)
	l.log.Debug().
		Str("stock_id", stockID).
		Int("delta", delta).
		Int("quantity", updated.Quantity).
		Str("action_by", actionBy).
		Msg("ajuste de stock aplicado")
	return updated, nil
}

// runTx ejecuta fn en transacción y reintenta ante ErrConflict hasta agotar
// el presupuesto. Cualquier otro error se devuelve de inmediato.
func (l *Ledger) runTx(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	batchRepo repository.BatchRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = l.txRunner.Run(ctx, fn)
		if !errors.Is(err, domain.ErrConflict) || attempt >= l.txRetries {
			return err
		}
		l.metrics.TxRetried()
		l.log.Warn().
			Int("attempt", attempt+1).
			Msg("conflicto de escritura concurrente, reintentando transacción")
	}
}

// checkCompany valida que la empresa exista antes de tocar estado.
func (l *Ledger) checkCompany(companyID string) error {
	if companyID == "" {
		return domain.ErrInvalidInput
	}
	company, err := l.companyRepo.GetByID(companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// requestedTypes valida el mapa de cantidades y devuelve, en orden canónico,
// los tipos sanguíneos con cantidad positiva. Las entradas con cantidad <= 0
// se ignoran; un tipo desconocido o un request sin ninguna cantidad positiva
// es ErrInvalidInput.
func requestedTypes(quantities map[entity.BloodType]int) ([]entity.BloodType, error) {
	for bt := range quantities {
		if !bt.Valid() {
			return nil, domain.ErrInvalidInput
		}
	}
	var requested []entity.BloodType
	for _, bt := range entity.BloodTypes {
		if quantities[bt] > 0 {
			requested = append(requested, bt)
		}
	}
	if len(requested) == 0 {
		return nil, domain.ErrInvalidInput
	}
	return requested, nil
}

// reject cuenta el rechazo en métricas y devuelve el mismo error.
func (l *Ledger) reject(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		l.metrics.Rejected("invalid_input")
	case errors.Is(err, domain.ErrCompanyNotFound):
		l.metrics.Rejected("company_not_found")
	case errors.Is(err, domain.ErrNotFound):
		l.metrics.Rejected("not_found")
	case errors.Is(err, domain.ErrForbidden):
		l.metrics.Rejected("forbidden")
	case errors.Is(err, domain.ErrInsufficientStock):
		l.metrics.Rejected("insufficient_stock")
	case errors.Is(err, domain.ErrInsufficientBatchStock):
		l.metrics.Rejected("insufficient_batch_stock")
	case errors.Is(err, domain.ErrBloodTypeNotInBatch):
		l.metrics.Rejected("blood_type_not_in_batch")
	case errors.Is(err, domain.ErrConflict):
		l.metrics.Rejected("conflict")
	default:
		l.metrics.Rejected("internal")
	}
	return err
}
