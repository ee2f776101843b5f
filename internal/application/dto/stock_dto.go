package dto

import "github.com/shopspring/decimal"

// StockItemResponse nivel de stock de un SKU.
type StockItemResponse struct {
	CodSku                   string          `json:"codSku"`
	DescricaoItem            string          `json:"descricaoItem"`
	UnidMedida               string          `json:"unidMedida"`
	Active                   bool            `json:"active"`
	Quantity                 decimal.Decimal `json:"quantity"`
	QuantityFormatted        string          `json:"quantityFormatted"`
	EstimatedConsumptionTime string          `json:"estimatedConsumptionTime"`
}

// StockCostResponse valoración de un SKU.
type StockCostResponse struct {
	Sku                string           `json:"sku"`
	Description        string           `json:"description"`
	Quantity           decimal.Decimal  `json:"quantity"`
	UnityMeasure       string           `json:"unityMeasure"`
	UnitCost           decimal.Decimal  `json:"unitCost"`
	TotalCost          decimal.Decimal  `json:"totalCost"`
	TotalCostFormatted string           `json:"totalCostFormatted"`
	Active             bool             `json:"active"`
	LastEntryCost      *decimal.Decimal `json:"lastEntryCost"`
}

// StockCostListResponse resultado de stock-costs: filas y total.
type StockCostListResponse struct {
	Results    []StockCostResponse `json:"results"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	HasNext    bool                `json:"hasNext"`
	TotalValue decimal.Decimal     `json:"totalValue"` // suma de totalCost de la página
}
