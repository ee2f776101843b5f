package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/usecase"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Registry        *SessionRegistry
	Preferences     *usecase.PreferencesUseCase
	Navigation      *usecase.NavigationService
	DefaultPageSize int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	sessionHandler := NewSessionHandler(deps.Registry, deps.Preferences, deps.Navigation)
	catalogHandler := NewCatalogHandler(deps.DefaultPageSize)
	stockHandler := NewStockHandler(deps.DefaultPageSize)
	txHandler := NewTransactionHandler(deps.DefaultPageSize)
	userHandler := NewUserHandler()

	writers := RequireRole(entity.RoleStaff, entity.RoleMaster)
	masterOnly := RequireRole(entity.RoleMaster)

	// Sesión (público)
	api.Post("/session", sessionHandler.Open)
	api.Post("/session/login", sessionHandler.Login)

	// Sesión sin login: preferencias y menú
	anon := api.Group("/", SessionMiddleware(deps.Registry, false))
	anon.Get("/session/preferences", sessionHandler.GetPreferences)
	anon.Put("/session/preferences", sessionHandler.UpdatePreferences)
	anon.Delete("/session/preferences", sessionHandler.ResetPreferences)
	anon.Get("/navigation", sessionHandler.Navigation)
	anon.Post("/session/logout", sessionHandler.Logout)

	// Rutas protegidas (requieren sesión autenticada)
	protected := api.Group("/", SessionMiddleware(deps.Registry, true))
	protected.Get("/session/me", sessionHandler.Me)
	protected.Post("/session/refresh", sessionHandler.Refresh)
	protected.Get("/session/inventory-user", userHandler.InventoryUser)

	// Itens
	items := protected.Group("/items")
	items.Get("/", catalogHandler.ListItems)
	items.Get("/search", catalogHandler.SearchItems)
	items.Get("/:sku/cost", catalogHandler.ItemCost)
	items.Get("/:sku", catalogHandler.GetItem)
	items.Post("/", writers, catalogHandler.CreateItem)
	items.Put("/:sku", writers, catalogHandler.UpdateItem)
	items.Delete("/:sku", writers, catalogHandler.DeleteItem)

	// Fornecedores
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Get("/search", catalogHandler.SearchSuppliers)
	suppliers.Post("/", writers, catalogHandler.CreateSupplier)
	suppliers.Put("/:id", writers, catalogHandler.UpdateSupplier)
	suppliers.Delete("/:id", writers, catalogHandler.DeleteSupplier)

	// Estoques y custos
	protected.Get("/stocks", stockHandler.ListStocks)
	costs := protected.Group("/stock-costs")
	costs.Get("/", stockHandler.ListStockCosts)
	costs.Get("/report.pdf", stockHandler.StockCostReport)
	costs.Get("/:sku/last-entry", stockHandler.LastEntryCost)

	// Transacciones
	txs := protected.Group("/transactions")
	txs.Get("/", txHandler.List)
	txs.Get("/export.xlsx", txHandler.Export)
	txs.Get("/history/:sku", txHandler.History)
	txs.Post("/validate", writers, txHandler.Validate)
	txs.Post("/", writers, txHandler.Create)
	txs.Put("/:id", writers, txHandler.Update)
	txs.Delete("/:id", writers, txHandler.Delete)
	txs.Post("/:id/recalculate", writers, txHandler.Recalculate)

	// Usuarios (sólo master)
	users := protected.Group("/users", masterOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Patch("/:id", userHandler.Update)
	users.Put("/:id/permissions", userHandler.UpdatePermissions)
	users.Delete("/:id", userHandler.Delete)
}
