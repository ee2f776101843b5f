package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/api"
)

var _ repository.TransactionOperations = (*TransactionOperations)(nil)

// TransactionOperations endpoints de validación y recálculo del backend.
type TransactionOperations struct {
	client *api.Client
}

// NewTransactionOperations construye el adaptador.
func NewTransactionOperations(c *api.Client) *TransactionOperations {
	return &TransactionOperations{client: c}
}

type operationWire struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	Detail              string `json:"detail"`
	UpdatedTransactions int    `json:"updatedTransactions"`
}

func (w operationWire) message() string {
	if w.Message != "" {
		return w.Message
	}
	return w.Detail
}

// asFailure convierte un 400 con cuerpo {success:false, message} en resultado
// no exitoso; cualquier otro error se propaga.
func asFailure(err error) (*operationWire, error) {
	var httpErr *api.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusBadRequest {
		return nil, err
	}
	var w operationWire
	if jsonErr := json.Unmarshal(httpErr.Body, &w); jsonErr != nil {
		return nil, err
	}
	if w.message() == "" {
		w.Message = httpErr.Detail
	}
	w.Success = false
	return &w, nil
}

func (o *TransactionOperations) RecalculateCosts(ctx context.Context, transactionID int64, sku string) (*repository.RecalculationResult, error) {
	body := map[string]any{"transactionId": transactionID, "sku": sku}
	var out operationWire
	if err := o.client.Post(ctx, pathRecalculate, body, &out); err != nil {
		failed, ferr := asFailure(err)
		if ferr != nil {
			return nil, fmt.Errorf("recalculate-costs: %w", ferr)
		}
		out = *failed
	}
	return &repository.RecalculationResult{
		Success:             out.Success,
		Message:             out.message(),
		UpdatedTransactions: out.UpdatedTransactions,
	}, nil
}

func (o *TransactionOperations) ValidateStockOperation(ctx context.Context, sku string, op repository.StockOperationType, transactionID *int64, newQuantity *decimal.Decimal) (*repository.StockValidation, error) {
	body := struct {
		Sku           string           `json:"sku"`
		OperationType string           `json:"operationType"`
		TransactionID *int64           `json:"transactionId,omitempty"`
		NewQuantity   *decimal.Decimal `json:"newQuantity,omitempty"`
	}{Sku: sku, OperationType: string(op), TransactionID: transactionID, NewQuantity: newQuantity}

	var out struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	if err := o.client.Post(ctx, pathValidateStock, body, &out); err != nil {
		return nil, fmt.Errorf("validate-stock-operation: %w", err)
	}
	return &repository.StockValidation{Valid: out.Valid, Message: out.Message}, nil
}

func (o *TransactionOperations) DeleteTransaction(ctx context.Context, formattedID string) (*repository.OperationResult, error) {
	var out operationWire
	err := o.client.Do(ctx, api.Request{Method: http.MethodDelete, Path: pathTransactionOps + url.PathEscape(formattedID) + "/"}, &out)
	if err != nil {
		failed, ferr := asFailure(err)
		if ferr != nil {
			return nil, fmt.Errorf("eliminar transacción %s: %w", formattedID, ferr)
		}
		out = *failed
	}
	return &repository.OperationResult{Success: out.Success, Message: out.message()}, nil
}

func (o *TransactionOperations) UpdateTransaction(ctx context.Context, formattedID string, u repository.TransactionUpdate) (*repository.OperationResult, error) {
	body := struct {
		Quantity   *decimal.Decimal `json:"quantity,omitempty"`
		UnitCost   *decimal.Decimal `json:"unitCost,omitempty"`
		CodNf      *string          `json:"codNf,omitempty"`
		SupplierID *int64           `json:"supplierId,omitempty"`
	}{Quantity: u.Quantity, UnitCost: u.UnitCost, CodNf: u.InvoiceCode, SupplierID: u.SupplierID}

	var out operationWire
	path := pathTransactionOps + url.PathEscape(formattedID) + "/update/"
	if err := o.client.Put(ctx, path, body, &out); err != nil {
		failed, ferr := asFailure(err)
		if ferr != nil {
			return nil, fmt.Errorf("actualizar transacción %s: %w", formattedID, ferr)
		}
		out = *failed
	}
	return &repository.OperationResult{Success: out.Success, Message: out.message()}, nil
}
