package main

import (
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/auth"
	"github.com/jhoicas/stockcontrol-gateway/internal/application/inventory"
	"github.com/jhoicas/stockcontrol-gateway/internal/application/report"
	"github.com/jhoicas/stockcontrol-gateway/internal/application/usecase"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/api"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/pdf"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/rest"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/stockcontrol-gateway/internal/interfaces/http"
	"github.com/jhoicas/stockcontrol-gateway/pkg/config"
	"github.com/jhoicas/stockcontrol-gateway/pkg/logger"
)

// newWorkspaceFactory arma el grafo de dependencias de una sesión: cliente del
// backend con los tokens de la sesión, repositorios, caché y casos de uso.
func newWorkspaceFactory(cfg *config.Config, log *logger.Logger) httpRouter.WorkspaceFactory {
	loc := cfg.App.Location()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(loc)
	sheetWriter := xlsx.NewExcelizeWriter(loc)

	return func(s *entity.Session) *httpRouter.Workspace {
		client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, s,
			api.WithLogger(log.Component("api")))

		itemRepo := rest.NewItemRepository(client)
		supplierRepo := rest.NewSupplierRepository(client)
		userRepo := rest.NewUserRepository(client)
		stockRepo := rest.NewStockRepository(client)
		stockCostRepo := rest.NewStockCostRepository(client)
		txRepo := rest.NewTransactionRepository(client, loc)

		itemUC := usecase.NewItemUseCase(itemRepo, stockCostRepo)
		txCache := cache.New[*repository.Page[entity.Transaction]](cfg.Cache.TTL,
			cache.WithLogger[*repository.Page[entity.Transaction]](log.Component("cache")))

		txLog := log.Component("transactions")
		txUC := inventory.NewTransactionUseCase(
			txRepo, userRepo, itemUC, costEngine(cfg, client, txRepo, txLog), txCache,
			inventory.WithLogger(txLog),
			inventory.WithLocation(loc),
		)

		return &httpRouter.Workspace{
			Session:      s,
			Auth:         auth.NewAuthUseCase(s, rest.NewTokenRepository(client), userRepo, client),
			Items:        itemUC,
			Suppliers:    usecase.NewSupplierUseCase(supplierRepo),
			Users:        usecase.NewUserUseCase(userRepo),
			Stocks:       usecase.NewStockUseCase(stockRepo),
			StockCosts:   usecase.NewStockCostUseCase(stockCostRepo),
			Transactions: txUC,
			Reports:      report.NewReportUseCase(stockCostRepo, stockRepo, txUC, pdfGenerator, sheetWriter),
		}
	}
}

// costEngine elige el motor de recálculo según COST_ENGINE.
func costEngine(cfg *config.Config, client *api.Client, txRepo *rest.TransactionRepository, log zerolog.Logger) inventory.CostEngine {
	if cfg.API.CostEngine == config.CostEngineClient {
		return inventory.NewClientEngine(txRepo, log)
	}
	return inventory.NewBackendEngine(rest.NewTransactionOperations(client), log)
}
