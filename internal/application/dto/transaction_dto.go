package dto

import "github.com/shopspring/decimal"

// TransactionResponse transacción unificada para listados.
type TransactionResponse struct {
	ID                  string          `json:"id"` // entrada-12 | saida-7
	IdTransacao         int64           `json:"idTransacao"`
	TransactionType     string          `json:"transactionType"`
	Date                string          `json:"date"` // ISO
	Time                string          `json:"time"`
	Sku                 string          `json:"sku"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnityMeasure        string          `json:"unityMeasure"`
	UnitCost            decimal.Decimal `json:"unitCost"`
	TotalCost           decimal.Decimal `json:"totalCost"`
	UnitCostFormatted   string          `json:"unitCostFormatted"`
	TotalCostFormatted  string          `json:"totalCostFormatted"`
	NotaFiscal          string          `json:"notaFiscal,omitempty"`
	Username            string          `json:"username,omitempty"`
}

// CreateTransactionRequest formulario de entrada o salida.
// Las entradas requieren fornecedor, nota fiscal y costo; las salidas toman el costo medio.
type CreateTransactionRequest struct {
	IsEntry    bool             `json:"isEntry"`
	SupplierID *int64           `json:"supplierId"`
	CodNf      string           `json:"codNf"`
	Sku        string           `json:"sku" validate:"required"`
	Quantity   decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost   *decimal.Decimal `json:"unitCost"`
	Date       string           `json:"date"` // opcional, ISO o DD/MM/YYYY; por defecto ahora
	Time       string           `json:"time"`
}

// UpdateTransactionRequest cambios sobre una transacción existente.
type UpdateTransactionRequest struct {
	Quantity   *decimal.Decimal `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unitCost"`
	CodNf      *string          `json:"codNf"`
	SupplierID *int64           `json:"supplierId"`
	Sku        *string          `json:"sku"`
}

// ValidateOperationRequest consulta previa a borrar o editar.
type ValidateOperationRequest struct {
	OperationType string           `json:"operationType" validate:"required,oneof=delete edit"`
	TransactionID string           `json:"transactionId" validate:"required"` // formato tipo-id
	NewQuantity   *decimal.Decimal `json:"newQuantity"`
}

// ValidationResponse resultado de una validación de stock.
type ValidationResponse struct {
	Valid          bool     `json:"valid"`
	Message        string   `json:"message"`
	DependentExits []string `json:"dependentExits,omitempty"`
}

// CostUpdateResponse salida cuyo costo se reescribió (o no llegó a reescribirse).
type CostUpdateResponse struct {
	IdTransacao int64           `json:"idTransacao"`
	ID          string          `json:"id"`
	OldCost     decimal.Decimal `json:"oldCost"`
	NewCost     decimal.Decimal `json:"newCost"`
	Error       string          `json:"error,omitempty"`
}

// RecalculationResponse informe del recálculo de costos.
type RecalculationResponse struct {
	Engine       string               `json:"engine"`
	Success      bool                 `json:"success"`
	Message      string               `json:"message,omitempty"`
	Updated      []CostUpdateResponse `json:"updated"`
	Failed       *CostUpdateResponse  `json:"failed,omitempty"`
	NotAttempted []CostUpdateResponse `json:"notAttempted,omitempty"`
	UpdatedCount int                  `json:"updatedCount"`
}

// MutationResponse resultado de crear, editar o eliminar.
type MutationResponse struct {
	Success       bool                   `json:"success"`
	Message       string                 `json:"message"`
	Transaction   *TransactionResponse   `json:"transaction,omitempty"`
	Recalculation *RecalculationResponse `json:"recalculation,omitempty"`
}
