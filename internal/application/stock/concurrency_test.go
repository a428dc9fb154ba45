package stock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemovida/hemostock-api/internal/domain"
	"github.com/hemovida/hemostock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Ajustes concurrentes sobre el mismo stock no pierden actualizaciones: la
// cantidad final es la inicial más la suma de todos los deltas aplicados.
func TestAdjust_ConcurrenteSinPerdidas(t *testing.T) {
	env := newTestEnv(t)
	s := env.seedStock(t, entity.BloodAPos, 0)

	const workers = 20
	const perWorker = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, err := env.ledger.Adjust(context.Background(), s.ID, 1, testActor, "")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, env.stockQuantity(t, entity.BloodAPos))
	assert.Equal(t, workers*perWorker, env.movementCount(t, s.ID),
		"un movimiento por ajuste confirmado")
}

// Descuentos concurrentes compitiendo por un stock limitado: la cantidad nunca
// queda negativa y solo se confirman tantas salidas como unidades había.
func TestAdjust_DrenadoConcurrenteNoNegativo(t *testing.T) {
	env := newTestEnv(t)
	s := env.seedStock(t, entity.BloodONeg, 10)

	const workers = 25 // más intentos que unidades disponibles

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.ledger.Adjust(context.Background(), s.ID, -1, testActor, "")
			if err == nil {
				mu.Lock()
				applied++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, domain.ErrInsufficientStock),
				"los rechazos deben ser por stock insuficiente")
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, applied, "solo caben 10 salidas de una unidad")
	assert.Equal(t, 0, env.stockQuantity(t, entity.BloodONeg))
	assert.Equal(t, 10, env.movementCount(t, s.ID),
		"los rechazos no registran movimientos")
}

// Salidas por lote concurrentes sobre las mismas líneas: conservación por tipo
// sanguíneo, con el lote y el stock siempre consistentes entre sí.
func TestProcessBulkExit_Concurrente(t *testing.T) {
	env := newTestEnv(t)
	batch := env.seedBatch(t, "LOTE-1", map[entity.BloodType]int{
		entity.BloodAPos: 8,
		entity.BloodONeg: 8,
	})

	const workers = 12 // cada worker intenta sacar 1 unidad de cada tipo

	var wg sync.WaitGroup
	var mu sync.Mutex
	confirmed := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.ledger.ProcessBulkExit(context.Background(), env.companyID, batch.ID,
				map[entity.BloodType]int{entity.BloodAPos: 1, entity.BloodONeg: 1}, testActor)
			if err == nil {
				mu.Lock()
				confirmed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 8, confirmed, "solo caben 8 salidas completas")
	assert.Equal(t, 0, env.stockQuantity(t, entity.BloodAPos))
	assert.Equal(t, 0, env.stockQuantity(t, entity.BloodONeg))

	list, err := env.ledger.ListAvailableBatches(context.Background(), env.companyID)
	require.NoError(t, err)
	assert.Empty(t, list, "el lote quedó drenado")
}
