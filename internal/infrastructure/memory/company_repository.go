package memory

import (
	"sort"

	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/domain/repository"
)

// Asegura el cumplimiento de la interfaz.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación en memoria de CompanyRepository.
type CompanyRepo struct {
	store *Store
}

// NewCompanyRepository construye el adaptador.
func NewCompanyRepository(store *Store) *CompanyRepo {
	return &CompanyRepo{store: store}
}

// Create registra una empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *company
	r.store.companies[c.ID] = &c
	return nil
}

// GetByID devuelve la empresa, o (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.companies[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

// List devuelve las empresas ordenadas por nombre.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.Company
	for _, c := range r.store.companies {
		cc := *c
		list = append(list, &cc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}
