package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// TransactionRepository puerto hacia transacoes, entradas, saidas y unified-transactions.
type TransactionRepository interface {
	// ListUnified listado combinado de entradas y salidas.
	ListUnified(ctx context.Context, f TransactionFilter) (*Page[entity.Transaction], error)
	// History todas las transacciones de un SKU (todas las páginas).
	History(ctx context.Context, sku string) ([]entity.Transaction, error)

	GetRecord(ctx context.Context, id int64) (*entity.TransactionRecord, error)
	CreateRecord(ctx context.Context, rec *entity.TransactionRecord) (*entity.TransactionRecord, error)
	UpdateRecord(ctx context.Context, rec *entity.TransactionRecord) (*entity.TransactionRecord, error)
	DeleteRecord(ctx context.Context, id int64) error

	GetDetail(ctx context.Context, kind entity.TransactionType, id int64) (*entity.TransactionDetail, error)
	CreateDetail(ctx context.Context, d *entity.TransactionDetail) (*entity.TransactionDetail, error)
	DeleteDetail(ctx context.Context, kind entity.TransactionType, id int64) error
}

// StockOperationType operación que el backend valida.
type StockOperationType string

// Operaciones aceptadas por validate-stock-operation.
const (
	StockOperationDelete StockOperationType = "delete"
	StockOperationEdit   StockOperationType = "edit"
)

// StockValidation resultado de validate-stock-operation.
type StockValidation struct {
	Valid   bool
	Message string
}

// RecalculationResult resultado de recalculate-costs.
type RecalculationResult struct {
	Success             bool
	Message             string
	UpdatedTransactions int
}

// OperationResult resultado de los endpoints transactions/{id}/.
type OperationResult struct {
	Success bool
	Message string
}

// TransactionUpdate cuerpo de transactions/{id}/update/. Los nil no se envían.
type TransactionUpdate struct {
	Quantity    *decimal.Decimal
	UnitCost    *decimal.Decimal
	InvoiceCode *string
	SupplierID  *int64
}

// TransactionOperations operaciones delegadas al backend (motor "backend").
type TransactionOperations interface {
	RecalculateCosts(ctx context.Context, transactionID int64, sku string) (*RecalculationResult, error)
	ValidateStockOperation(ctx context.Context, sku string, op StockOperationType, transactionID *int64, newQuantity *decimal.Decimal) (*StockValidation, error)
	DeleteTransaction(ctx context.Context, formattedID string) (*OperationResult, error)
	UpdateTransaction(ctx context.Context, formattedID string, u TransactionUpdate) (*OperationResult, error)
}
