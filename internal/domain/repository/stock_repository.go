package repository

import "github.com/hemovida/hemostock-api/internal/domain/entity"

// StockRepository define el puerto de persistencia para el stock por
// empresa + tipo sanguíneo (DIP). Las lecturas devuelven (nil, nil) cuando la
// fila no existe; el ledger decide explícitamente qué hacer con la ausencia.
// Las variantes ForUpdate bloquean la fila dentro de la transacción en curso.
type StockRepository interface {
	GetByID(id string) (*entity.Stock, error)
	GetByIDForUpdate(id string) (*entity.Stock, error)
	GetByCompanyAndType(companyID string, bt entity.BloodType) (*entity.Stock, error)
	GetByCompanyAndTypeForUpdate(companyID string, bt entity.BloodType) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByCompany(companyID string) ([]*entity.Stock, error)
}
