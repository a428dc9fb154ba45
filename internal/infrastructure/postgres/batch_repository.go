package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hemovida/hemostock-api/internal/domain"
	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con
// pool o tx). Las líneas viven en batch_blood y solo se leen y escriben a
// través de su lote.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

func (r *BatchRepo) getBatch(query string, args ...any) (*entity.Batch, error) {
	var b entity.Batch
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&b.ID, &b.CompanyID, &b.BatchCode, &b.EntryDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadLines(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// loadLines carga las líneas del lote, en orden estable por tipo sanguíneo.
func (r *BatchRepo) loadLines(b *entity.Batch) error {
	query := `
		SELECT id, blood_type, quantity
		FROM batch_blood WHERE batch_id = $1
		ORDER BY blood_type`
	rows, err := r.q.Query(context.Background(), query, b.ID)
	if err != nil {
		return fmt.Errorf("load batch lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line entity.BatchLine
		if err := rows.Scan(&line.ID, &line.BloodType, &line.Quantity); err != nil {
			return fmt.Errorf("scan batch line: %w", err)
		}
		b.Lines = append(b.Lines, line)
	}
	return rows.Err()
}

// GetByID obtiene un lote con sus líneas, o (nil, nil) si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	b, err := r.getBatch(`SELECT id, company_id, batch_code, entry_date FROM batch WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetByIDForUpdate obtiene el lote y bloquea su fila (SELECT FOR UPDATE);
// las líneas solo se modifican bajo ese bloqueo.
func (r *BatchRepo) GetByIDForUpdate(id string) (*entity.Batch, error) {
	b, err := r.getBatch(`SELECT id, company_id, batch_code, entry_date FROM batch WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, fmt.Errorf("get batch for update: %w", err)
	}
	return b, nil
}

// GetByCompanyAndCode busca el lote por código dentro de la empresa.
func (r *BatchRepo) GetByCompanyAndCode(companyID, batchCode string) (*entity.Batch, error) {
	b, err := r.getBatch(
		`SELECT id, company_id, batch_code, entry_date FROM batch WHERE company_id = $1 AND batch_code = $2`,
		companyID, batchCode,
	)
	if err != nil {
		return nil, fmt.Errorf("get batch by code: %w", err)
	}
	return b, nil
}

// GetByCompanyAndCodeForUpdate busca por código y bloquea la fila del lote.
func (r *BatchRepo) GetByCompanyAndCodeForUpdate(companyID, batchCode string) (*entity.Batch, error) {
	b, err := r.getBatch(
		`SELECT id, company_id, batch_code, entry_date FROM batch WHERE company_id = $1 AND batch_code = $2 FOR UPDATE`,
		companyID, batchCode,
	)
	if err != nil {
		return nil, fmt.Errorf("get batch by code for update: %w", err)
	}
	return b, nil
}

// Save inserta o actualiza el lote y todas sus líneas. Dos creaciones
// concurrentes del mismo (empresa, código) chocan en el único natural; el
// choque se reporta como ErrConflict para que el ledger reintente y funda en
// el lote ya creado.
func (r *BatchRepo) Save(batch *entity.Batch) error {
	query := `
		INSERT INTO batch (id, company_id, batch_code, entry_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.CompanyID, batch.BatchCode, batch.EntryDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: insert batch: %v", domain.ErrConflict, err)
		}
		return fmt.Errorf("insert batch: %w", err)
	}

	lineQuery := `
		INSERT INTO batch_blood (id, batch_id, blood_type, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (batch_id, blood_type)
		DO UPDATE SET quantity = EXCLUDED.quantity`
	for i := range batch.Lines {
		line := &batch.Lines[i]
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, batch.ID, string(line.BloodType), line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("upsert batch line: %w", err)
		}
	}
	return nil
}

// ListWithAvailability lista los lotes de la empresa con al menos una línea
// con cantidad > 0, con todas sus líneas, ordenados por fecha de entrada.
func (r *BatchRepo) ListWithAvailability(companyID string) ([]*entity.Batch, error) {
	query := `
		SELECT b.id, b.company_id, b.batch_code, b.entry_date,
		       bb.id, bb.blood_type, bb.quantity
		FROM batch b
		JOIN batch_blood bb ON bb.batch_id = b.id
		WHERE b.company_id = $1
		  AND EXISTS (
		      SELECT 1 FROM batch_blood a
		      WHERE a.batch_id = b.id AND a.quantity > 0
		  )
		ORDER BY b.entry_date, b.batch_code, bb.blood_type`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Batch
	byID := make(map[string]*entity.Batch)
	for rows.Next() {
		var (
			b    entity.Batch
			line entity.BatchLine
		)
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.BatchCode, &b.EntryDate,
			&line.ID, &line.BloodType, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batch, ok := byID[b.ID]
		if !ok {
			batch = &b
			byID[b.ID] = batch
			list = append(list, batch)
		}
		batch.Lines = append(batch.Lines, line)
	}
	return list, rows.Err()
}
