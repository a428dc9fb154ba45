package repository

import "github.com/hemovida/hemostock-api/internal/domain/entity"

// BatchRepository define el puerto de persistencia para lotes (DIP).
// Las líneas (BatchLine) no tienen acceso independiente: se leen y persisten
// siempre a través de su lote; Save escribe el lote y todas sus líneas en una
// sola llamada dentro de la transacción en curso.
type BatchRepository interface {
	GetByID(id string) (*entity.Batch, error)
	GetByIDForUpdate(id string) (*entity.Batch, error)
	GetByCompanyAndCode(companyID, batchCode string) (*entity.Batch, error)
	GetByCompanyAndCodeForUpdate(companyID, batchCode string) (*entity.Batch, error)
	Save(batch *entity.Batch) error
	// ListWithAvailability lista los lotes de la empresa con al menos una
	// línea con cantidad > 0.
	ListWithAvailability(companyID string) ([]*entity.Batch, error)
}
