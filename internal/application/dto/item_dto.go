package dto

import "github.com/shopspring/decimal"

// ItemRequest alta de un item.
type ItemRequest struct {
	CodSku        string `json:"codSku" validate:"required"`
	DescricaoItem string `json:"descricaoItem" validate:"required"`
	UnidMedida    string `json:"unidMedida" validate:"required"`
	Active        *bool  `json:"active"`
}

// UpdateItemRequest modificación parcial de un item.
type UpdateItemRequest struct {
	DescricaoItem *string `json:"descricaoItem"`
	UnidMedida    *string `json:"unidMedida"`
	Active        *bool   `json:"active"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	CodSku                   string           `json:"codSku"`
	DescricaoItem            string           `json:"descricaoItem"`
	UnidMedida               string           `json:"unidMedida"`
	Active                   bool             `json:"active"`
	Quantity                 *decimal.Decimal `json:"quantity,omitempty"`
	EstimatedConsumptionTime string           `json:"estimatedConsumptionTime,omitempty"`
}

// ItemCostResponse costo medio y última entrada de un SKU.
type ItemCostResponse struct {
	Sku                    string          `json:"sku"`
	AverageCost            decimal.Decimal `json:"averageCost"`
	AverageCostFormatted   string          `json:"averageCostFormatted"`
	LastEntryCost          decimal.Decimal `json:"lastEntryCost"`
	LastEntryCostFormatted string          `json:"lastEntryCostFormatted"`
	Source                 string          `json:"source"` // custo-medio | stock-costs
}
