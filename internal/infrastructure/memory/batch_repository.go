package memory

import (
	"sort"

	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/domain/repository"
)

// Asegura el cumplimiento de la interfaz.
var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación en memoria de BatchRepository. Las líneas viven
// solo dentro de su lote: se clonan con él y se descartan con él.
type BatchRepo struct {
	store   *Store
	locking bool
}

// NewBatchRepository construye el adaptador para uso fuera de transacción.
func NewBatchRepository(store *Store) *BatchRepo {
	return &BatchRepo{store: store, locking: true}
}

func (r *BatchRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// GetByID devuelve una copia profunda del lote, o (nil, nil) si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	defer r.lock()()
	b, ok := r.store.batches[id]
	if !ok {
		return nil, nil
	}
	return cloneBatch(b), nil
}

func (r *BatchRepo) GetByIDForUpdate(id string) (*entity.Batch, error) {
	return r.GetByID(id)
}

// GetByCompanyAndCode busca el lote por código dentro de la empresa.
func (r *BatchRepo) GetByCompanyAndCode(companyID, batchCode string) (*entity.Batch, error) {
	defer r.lock()()
	for _, b := range r.store.batches {
		if b.CompanyID == companyID && b.BatchCode == batchCode {
			return cloneBatch(b), nil
		}
	}
	return nil, nil
}

func (r *BatchRepo) GetByCompanyAndCodeForUpdate(companyID, batchCode string) (*entity.Batch, error) {
	return r.GetByCompanyAndCode(companyID, batchCode)
}

// Save guarda una copia profunda del lote con todas sus líneas.
func (r *BatchRepo) Save(batch *entity.Batch) error {
	defer r.lock()()
	r.store.batches[batch.ID] = cloneBatch(batch)
	return nil
}

// ListWithAvailability lista los lotes de la empresa con alguna línea con
// unidades, ordenados por fecha de entrada y código para un resultado estable.
func (r *BatchRepo) ListWithAvailability(companyID string) ([]*entity.Batch, error) {
	defer r.lock()()
	var list []*entity.Batch
	for _, b := range r.store.batches {
		if b.CompanyID == companyID && b.HasAvailability() {
			list = append(list, cloneBatch(b))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].EntryDate.Equal(list[j].EntryDate) {
			return list[i].EntryDate.Before(list[j].EntryDate)
		}
		return list[i].BatchCode < list[j].BatchCode
	})
	return list, nil
}
