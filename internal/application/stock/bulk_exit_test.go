package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemovida/hemostock-api/internal/domain"
	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProcessBulkExit
// ──────────────────────────────────────────────────────────────────────────────

// seedBatch registra un lote vía el ledger (crea también el stock) y lo devuelve.
func (e *testEnv) seedBatch(t *testing.T, code string, quantities map[entity.BloodType]int) *entity.Batch {
	t.Helper()

	batch, err := e.ledger.ProcessBatchEntry(context.Background(), e.companyID, code, quantities, testActor)
	require.NoError(t, err)
	return batch
}

// Salida feliz: descuenta del lote y del stock, y registra movimientos
// negativos con las cantidades previas correctas.
func TestProcessBulkExit_DescuentaLoteYStock(t *testing.T) {
	env := newTestEnv(t)
	batch := env.seedBatch(t, "LOTE-1", map[entity.BloodType]int{
		entity.BloodAPos: 10,
		entity.BloodONeg: 5,
	})

	updated, err := env.ledger.ProcessBulkExit(context.Background(), env.companyID, batch.ID,
		map[entity.BloodType]int{entity.BloodAPos: 4, entity.BloodONeg: 5}, testActor)
	require.NoError(t, err)

	assert.Equal(t, 6, updated.Line(entity.BloodAPos).Quantity)
	assert.Equal(t, 0, updated.Line(entity.BloodONeg).Quantity)
	assert.Equal(t, 6, env.stockQuantity(t, entity.BloodAPos))
	assert.Equal(t, 0, env.stockQuantity(t, entity.BloodONeg))

	stockRepo := memory.NewStockRepository(env.store)
	s, err := stockRepo.GetByCompanyAndType(env.companyID, entity.BloodAPos)
	require.NoError(t, err)
	history, err := env.ledger.GetMovementHistory(context.Background(), s.ID)
	require.NoError(t, err)
	require.Len(t, history, 2, "entrada del lote + salida")
	salida := history[0]
	assert.Equal(t, -4, salida.Movement)
	assert.Equal(t, 10, salida.QuantityBefore)
	assert.Equal(t, 6, salida.QuantityAfter)
	assert.Contains(t, salida.Notes, "LOTE-1")
}

// Una línea con faltante en el lote aborta el request
// completo, incluidas las líneas que sí tenían cantidad suficiente.
func TestProcessBulkExit_FaltanteAbortaTodo(t *testing.T) {
	env := newTestEnv(t)
	batch := env.seedBatch(t, "LOTE-1", map[entity.BloodType]int{
		entity.BloodAPos: 5,
		entity.BloodONeg: 3,
	})

	_, err := env.ledger.ProcessBulkExit(context.Background(), env.companyID, batch.ID,
		map[entity.BloodType]int{entity.BloodAPos: 5, entity.BloodONeg: 100}, testActor)
	require.ErrorIs(t, err, domain.ErrInsufficientBatchStock)

	// Cero efectos: ni el lote ni el stock cambian, ni hay movimientos nuevos.
	got, err := memory.NewBatchRepository(env.store).GetByID(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Line(entity.BloodAPos).Quantity, "A+ no debe haberse descontado")
	assert.Equal(t, 3, got.Line(entity.BloodONeg).Quantity)
	assert.Equal(t, 5, env.stockQuantity(t, entity.BloodAPos))
	assert.Equal(t, 3, env.stockQuantity(t, entity.BloodONeg))

	stockRepo := memory.NewStockRepository(env.store)
	sA, err := stockRepo.GetByCompanyAndType(env.companyID, entity.BloodAPos)
	require.NoError(t, err)
	assert.Equal(t, 1, env.movementCount(t, sA.ID), "solo el movimiento de entrada")
}

// Pedir un tipo que el lote no contiene → ErrBloodTypeNotInBatch sin efectos.
func TestProcessBulkExit_TipoFueraDelLote(t *testing.T) {
	env := newTestEnv(t)
	batch := env.seedBatch(t, "LOTE-1", map[entity.BloodType]int{entity.BloodAPos: 5})

	_, err := env.ledger.ProcessBulkExit(context.Background(), env.companyID, batch.ID,
		map[entity.BloodType]int{entity.BloodONeg: 1}, testActor)
	require.ErrorIs(t, err, domain.ErrBloodTypeNotInBatch)

	assert.Equal(t, 5, env.stockQuantity(t, entity.BloodAPos))
}

// El stock de la empresa puede quedar por debajo del lote (p.ej. por un ajuste
// manual negativo); la salida valida ambos y rechaza con ErrInsufficientStock.
func TestProcessBulkExit_StockEmpresaInsuficiente(t *testing.T) {
	env := newTestEnv(t)
	batch := env.seedBatch(t, "LOTE-1", map[entity.BloodType]int{entity.BloodAPos: 10})

	// Drena el stock de la empresa por fuera del lote.
	stockRepo := memory.NewStockRepository(env.store)
	s, err := stockRepo.GetByCompanyAndType(env.companyID, entity.BloodAPos)
	require.NoError(t, err)
	_, err = env.ledger.Adjust(context.Background(), s.ID, -8, testActor, "merma")
	require.NoError(t, err)

	_, err = env.ledger.ProcessBulkExit(context.Background(), env.companyID, batch.ID,
		map[entity.BloodType]int{entity.BloodAPos: 5}, testActor)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := memory.NewBatchRepository(env.store).GetByID(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Line(entity.BloodAPos).Quantity, "el lote no se toca")
	assert.Equal(t, 2, env.stockQuantity(t, entity.BloodAPos))
}

// Lote inexistente → ErrNotFound; lote de otra empresa → ErrForbidden.
func TestProcessBulkExit_LoteInexistenteOAjeno(t *testing.T) {
	env := newTestEnv(t)
	batch := env.seedBatch(t, "LOTE-1", map[entity.BloodType]int{entity.BloodAPos: 5})

	_, err := env.ledger.ProcessBulkExit(context.Background(), env.companyID, uuid.New().String(),
		map[entity.BloodType]int{entity.BloodAPos: 1}, testActor)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Segunda empresa intentando sacar del lote de la primera.
	otherID := uuid.New().String()
	now := time.Now()
	require.NoError(t, memory.NewCompanyRepository(env.store).Create(&entity.Company{
		ID:        otherID,
		Name:      "Otro Hemocentro",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}))
	_, err = env.ledger.ProcessBulkExit(context.Background(), otherID, batch.ID,
		map[entity.BloodType]int{entity.BloodAPos: 1}, testActor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Request inválido: sin cantidades positivas o sin ID de lote.
func TestProcessBulkExit_RequestInvalido(t *testing.T) {
	env := newTestEnv(t)
	batch := env.seedBatch(t, "LOTE-1", map[entity.BloodType]int{entity.BloodAPos: 5})
	ctx := context.Background()

	_, err := env.ledger.ProcessBulkExit(ctx, env.companyID, batch.ID,
		map[entity.BloodType]int{}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.ledger.ProcessBulkExit(ctx, env.companyID, batch.ID,
		map[entity.BloodType]int{entity.BloodAPos: -3}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.ledger.ProcessBulkExit(ctx, env.companyID, "",
		map[entity.BloodType]int{entity.BloodAPos: 1}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ListAvailableBatches
// ──────────────────────────────────────────────────────────────────────────────

// Un lote aparece mientras conserve alguna línea con unidades y desaparece al
// quedar completamente drenado.
func TestListAvailableBatches_ExcluyeLotesDrenados(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batch := env.seedBatch(t, "LOTE-1", map[entity.BloodType]int{
		entity.BloodAPos: 2,
		entity.BloodONeg: 1,
	})

	list, err := env.ledger.ListAvailableBatches(ctx, env.companyID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, batch.ID, list[0].ID)

	// Drena parcialmente: sigue disponible.
	_, err = env.ledger.ProcessBulkExit(ctx, env.companyID, batch.ID,
		map[entity.BloodType]int{entity.BloodONeg: 1}, testActor)
	require.NoError(t, err)
	list, err = env.ledger.ListAvailableBatches(ctx, env.companyID)
	require.NoError(t, err)
	assert.Len(t, list, 1, "queda A+ con unidades")

	// Drena el resto: el lote deja de listarse.
	_, err = env.ledger.ProcessBulkExit(ctx, env.companyID, batch.ID,
		map[entity.BloodType]int{entity.BloodAPos: 2}, testActor)
	require.NoError(t, err)
	list, err = env.ledger.ListAvailableBatches(ctx, env.companyID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = env.ledger.ListAvailableBatches(ctx, "empresa-fantasma")
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}
