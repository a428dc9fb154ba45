package stock_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hemovida/hemostock-api/internal/application/stock"
	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testActor = "op1"

// testEnv ledger cableado sobre el store en memoria, con una empresa creada.
type testEnv struct {
	ledger    *stock.Ledger
	store     *memory.Store
	companyID string
}

// newTestEnv construye el ledger con los adaptadores en memoria y una empresa
// activa lista para operar.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	companyRepo := memory.NewCompanyRepository(store)

	companyID := uuid.New().String()
	now := time.Now()
	require.NoError(t, companyRepo.Create(&entity.Company{
		ID:        companyID,
		Name:      "Hemocentro Test",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}), "debe crearse la empresa de prueba")

	ledger := stock.NewLedger(
		memory.NewTxRunner(store),
		companyRepo,
		memory.NewStockRepository(store),
		memory.NewBatchRepository(store),
		memory.NewStockMovementRepository(store),
		stock.Config{},
	)
	return &testEnv{ledger: ledger, store: store, companyID: companyID}
}

// seedStock crea directamente una fila de stock con la cantidad dada y la devuelve.
func (e *testEnv) seedStock(t *testing.T, bt entity.BloodType, quantity int) *entity.Stock {
	t.Helper()

	s := &entity.Stock{
		ID:        uuid.New().String(),
		CompanyID: e.companyID,
		BloodType: bt,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	}
	require.NoError(t, memory.NewStockRepository(e.store).Upsert(s))
	return s
}

// stockQuantity lee la cantidad actual del stock de un tipo sanguíneo;
// -1 si la fila no existe.
func (e *testEnv) stockQuantity(t *testing.T, bt entity.BloodType) int {
	t.Helper()

	s, err := memory.NewStockRepository(e.store).GetByCompanyAndType(e.companyID, bt)
	require.NoError(t, err)
	if s == nil {
		return -1
	}
	return s.Quantity
}

// movementCount cuenta los movimientos registrados para un stock.
func (e *testEnv) movementCount(t *testing.T, stockID string) int {
	t.Helper()

	list, err := memory.NewStockMovementRepository(e.store).ListByStock(stockID)
	require.NoError(t, err)
	return len(list)
}
