package memory

import (
	"sync"

	"github.com/hemovida/hemostock-api/internal/domain/entity"
)

// Store almacén en memoria para el ledger de stock. Útil en tests y en
// desarrollo local sin PostgreSQL. Un mutex global serializa las
// transacciones; las entidades guardadas nunca se mutan en el lugar (los
// repos clonan al leer y al escribir), de modo que un snapshot superficial de
// los mapas basta para el rollback.
type Store struct {
	mu        sync.Mutex
	companies map[string]*entity.Company
	stocks    map[string]*entity.Stock
	batches   map[string]*entity.Batch
	movements []*entity.StockMovement
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		companies: make(map[string]*entity.Company),
		stocks:    make(map[string]*entity.Stock),
		batches:   make(map[string]*entity.Batch),
	}
}

// snapshot copia el estado actual. Llamar con el mutex tomado.
type snapshot struct {
	stocks    map[string]*entity.Stock
	batches   map[string]*entity.Batch
	movements []*entity.StockMovement
}

func (s *Store) snapshot() snapshot {
	stocks := make(map[string]*entity.Stock, len(s.stocks))
	for k, v := range s.stocks {
		stocks[k] = v
	}
	batches := make(map[string]*entity.Batch, len(s.batches))
	for k, v := range s.batches {
		batches[k] = v
	}
	movements := make([]*entity.StockMovement, len(s.movements))
	copy(movements, s.movements)
	return snapshot{stocks: stocks, batches: batches, movements: movements}
}

// restore vuelve al estado del snapshot. Llamar con el mutex tomado.
func (s *Store) restore(snap snapshot) {
	s.stocks = snap.stocks
	s.batches = snap.batches
	s.movements = snap.movements
}

func cloneStock(s *entity.Stock) *entity.Stock {
	c := *s
	return &c
}

func cloneBatch(b *entity.Batch) *entity.Batch {
	c := *b
	c.Lines = make([]entity.BatchLine, len(b.Lines))
	copy(c.Lines, b.Lines)
	return &c
}

func cloneMovement(m *entity.StockMovement) *entity.StockMovement {
	c := *m
	return &c
}
