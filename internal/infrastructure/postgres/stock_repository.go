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

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). Las lecturas devuelven (nil, nil) cuando la fila no existe; el
// ledger decide si la ausencia es error o creación perezosa.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = "id, company_id, blood_type, quantity, updated_at"

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(&s.ID, &s.CompanyID, &s.BloodType, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetByID obtiene una fila de stock por ID.
func (r *StockRepo) GetByID(id string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE id = $1`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetByIDForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE).
func (r *StockRepo) GetByIDForUpdate(id string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE id = $1 FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// GetByCompanyAndType obtiene el stock de un tipo sanguíneo en una empresa.
func (r *StockRepo) GetByCompanyAndType(companyID string, bt entity.BloodType) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE company_id = $1 AND blood_type = $2`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, companyID, string(bt)))
	if err != nil {
		return nil, fmt.Errorf("get stock by type: %w", err)
	}
	return s, nil
}

// GetByCompanyAndTypeForUpdate obtiene el stock del tipo sanguíneo y bloquea
// la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetByCompanyAndTypeForUpdate(companyID string, bt entity.BloodType) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE company_id = $1 AND blood_type = $2 FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, companyID, string(bt)))
	if err != nil {
		return nil, fmt.Errorf("get stock by type for update: %w", err)
	}
	return s, nil
}

// Upsert inserta o actualiza la fila de stock. Dos inserciones concurrentes de
// la misma (empresa, tipo) chocan en el único natural; ese choque se reporta
// como ErrConflict para que el ledger reintente la transacción.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (id, company_id, blood_type, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.CompanyID, string(stock.BloodType), stock.Quantity, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: upsert stock: %v", domain.ErrConflict, err)
		}
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByCompany lista el stock de la empresa ordenado por tipo sanguíneo.
func (r *StockRepo) ListByCompany(companyID string) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE company_id = $1 ORDER BY blood_type`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.BloodType, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
