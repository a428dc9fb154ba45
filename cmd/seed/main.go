// seed crea una empresa de demostración con su stock inicial de sangre y
// registra un lote de ejemplo, usando el mismo cableado que usaría un
// servicio real (config -> logger -> pool -> repos -> ledger).
//
// Uso: go run ./cmd/seed [company-id]
// Sin argumento genera un ID nuevo; con argumento reutiliza la empresa.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	appstock "github.com/hemovida/hemostock-api/internal/application/stock"
	"github.com/hemovida/hemostock-api/internal/domain/entity"
	"github.com/hemovida/hemostock-api/internal/infrastructure/postgres"
	"github.com/hemovida/hemostock-api/pkg/config"
	"github.com/hemovida/hemostock-api/pkg/logger"
	"github.com/hemovida/hemostock-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "debug",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := appstock.NewLedger(txRunner, companyRepo, stockRepo, batchRepo, movementRepo, appstock.Config{
		Logger:    log,
		Metrics:   metrics.NewRecorder(prometheus.DefaultRegisterer),
		TxRetries: cfg.Ledger.TxRetries,
	})

	companyID := ""
	if len(os.Args) > 1 {
		companyID = os.Args[1]
	}
	if companyID == "" {
		companyID = uuid.New().String()
		now := time.Now()
		company := &entity.Company{
			ID:        companyID,
			Name:      "Hemocentro Demo",
			Status:    "active",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := companyRepo.Create(company); err != nil {
			log.Fatal().Err(err).Msg("crear empresa demo")
		}
		log.Info().Str("company_id", companyID).Msg("empresa demo creada")
	}

	// Entrada de lote de ejemplo: crea las filas de stock que falten
	batch, err := ledger.ProcessBatchEntry(ctx, companyID, "LOTE-DEMO-1", map[entity.BloodType]int{
		entity.BloodAPos: 10,
		entity.BloodONeg: 5,
		entity.BloodBPos: 8,
	}, "seed")
	if err != nil {
		log.Fatal().Err(err).Msg("registrar lote demo")
	}
	log.Info().
		Str("batch_id", batch.ID).
		Str("batch_code", batch.BatchCode).
		Int("lines", len(batch.Lines)).
		Msg("lote demo registrado")

	stocks, err := ledger.ListStockByCompany(ctx, companyID)
	if err != nil {
		log.Fatal().Err(err).Msg("listar stock")
	}
	for _, s := range stocks {
		log.Info().
			Str("blood_type", s.BloodType.String()).
			Int("quantity", s.Quantity).
			Msg("stock actual")
	}
}
