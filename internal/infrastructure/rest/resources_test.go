package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/rest"
)

func TestStockCostRepository_PaginacionBooleana(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-31", r.URL.Query().Get("stockDate"))
		writeJSON(w, http.StatusOK, map[string]any{
			"results": []any{map[string]any{
				"sku": "A", "description": "Parafuso", "quantity": 12, "unityMeasure": "UN",
				"unitCost": 1.25, "totalCost": 15, "active": true, "lastEntryCost": nil,
			}},
			"count": 31, "total": 31, "page": 2, "next": true, "previous": true,
		})
	}))

	repo := rest.NewStockCostRepository(c)
	page, err := repo.List(context.Background(), repository.StockCostFilter{StockDate: "2024-01-31", Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 31, page.Count)
	assert.Equal(t, 2, page.Page)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrevious)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "1.25", page.Results[0].UnitCost.String())
	assert.Nil(t, page.Results[0].LastEntryCost)
}

func TestStockRepository_NormalizaTiempoDeConsumo(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("showOnlyStockItems"))
		writeJSON(w, http.StatusOK, map[string]any{
			"results": []any{
				map[string]any{"cod_sku": "A", "descricao_item": "x", "unid_medida": "UN", "active": true, "quantity": 3, "estimated_consumption_time": "1 semanas"},
				map[string]any{"cod_sku": "B", "descricao_item": "y", "unid_medida": "UN", "active": true, "quantity": 0, "estimated_consumption_time": nil},
			},
			"count": 2, "next": nil, "previous": nil,
		})
	}))

	only := true
	page, err := rest.NewStockRepository(c).List(context.Background(), repository.StockFilter{ShowOnlyStockItems: &only})
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "1 semana", page.Results[0].EstimatedConsumptionTime)
	assert.Equal(t, "N/A", page.Results[1].EstimatedConsumptionTime)
}

func TestItemRepository_CostsYUpdate(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/itens/A1/custo-medio/":
			writeJSON(w, http.StatusOK, map[string]any{"custo_medio": "16.67", "custo_ultima_entrada": "20.00"})
		case r.Method == http.MethodPut:
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "B", body["codSku"])
			assert.Equal(t, false, body["active"])
			writeJSON(w, http.StatusOK, body)
		default:
			writeJSON(w, http.StatusNotFound, map[string]any{"detail": "não encontrado"})
		}
	}))
	repo := rest.NewItemRepository(c)

	costs, err := repo.Costs(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "16.67", costs.AverageCost.String())
	assert.Equal(t, "20", costs.LastEntryCost.String())

	updated, err := repo.Update(context.Background(), &entity.Item{SKU: "B", Description: "Porca", UnitMeasure: "UN", Active: false})
	require.NoError(t, err)
	assert.Equal(t, "Porca", updated.Description)
	assert.False(t, updated.Active)
}

func TestSupplierRepository_CreateOmiteID(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasID := body["codFornecedor"]
		assert.False(t, hasID, "el id lo asigna el backend")
		body["codFornecedor"] = 42
		writeJSON(w, http.StatusCreated, body)
	}))

	s, err := rest.NewSupplierRepository(c).Create(context.Background(), &entity.Supplier{ID: 99, Name: "ACME", Active: true})
	require.NoError(t, err)
	assert.Equal(t, int64(42), s.ID)
	assert.Equal(t, "ACME", s.Name)
}
