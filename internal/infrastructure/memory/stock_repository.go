package memory

import (
	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/domain/repository"
)

// Asegura el cumplimiento de la interfaz.
var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación en memoria de StockRepository. Con locking=true
// toma el mutex del store en cada llamada (uso suelto); el TxRunner entrega
// repos sin locking porque la transacción ya posee el mutex.
type StockRepo struct {
	store   *Store
	locking bool
}

// NewStockRepository construye el adaptador para uso fuera de transacción.
func NewStockRepository(store *Store) *StockRepo {
	return &StockRepo{store: store, locking: true}
}

func (r *StockRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// GetByID devuelve una copia del stock, o (nil, nil) si no existe.
func (r *StockRepo) GetByID(id string) (*entity.Stock, error) {
	defer r.lock()()
	s, ok := r.store.stocks[id]
	if !ok {
		return nil, nil
	}
	return cloneStock(s), nil
}

// GetByIDForUpdate en memoria equivale a GetByID: el mutex del store ya
// serializa a los escritores.
func (r *StockRepo) GetByIDForUpdate(id string) (*entity.Stock, error) {
	return r.GetByID(id)
}

// GetByCompanyAndType devuelve una copia del stock de ese tipo sanguíneo,
// o (nil, nil) si no existe.
func (r *StockRepo) GetByCompanyAndType(companyID string, bt entity.BloodType) (*entity.Stock, error) {
	defer r.lock()()
	for _, s := range r.store.stocks {
		if s.CompanyID == companyID && s.BloodType == bt {
			return cloneStock(s), nil
		}
	}
	return nil, nil
}

func (r *StockRepo) GetByCompanyAndTypeForUpdate(companyID string, bt entity.BloodType) (*entity.Stock, error) {
	return r.GetByCompanyAndType(companyID, bt)
}

// Upsert guarda una copia del stock (inserta o reemplaza por ID).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	defer r.lock()()
	r.store.stocks[stock.ID] = cloneStock(stock)
	return nil
}

// ListByCompany lista el stock de la empresa en orden canónico de tipo sanguíneo.
func (r *StockRepo) ListByCompany(companyID string) ([]*entity.Stock, error) {
	defer r.lock()()
	byType := make(map[entity.BloodType]*entity.Stock)
	for _, s := range r.store.stocks {
		if s.CompanyID == companyID {
			byType[s.BloodType] = s
		}
	}
	var list []*entity.Stock
	for _, bt := range entity.BloodTypes {
		if s, ok := byType[bt]; ok {
			list = append(list, cloneStock(s))
		}
	}
	return list, nil
}
