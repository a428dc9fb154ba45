package repository

import "github.com/hemovida/hemostock-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// El ledger solo necesita validar existencia; Create y List se usan en
// herramientas de seeding.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
}
