package entity

import "github.com/shopspring/decimal"

// StockItem nivel de stock de un SKU a una fecha, con el tiempo de consumo estimado.
type StockItem struct {
	SKU                      string
	Description              string
	UnitMeasure              string
	Active                   bool
	Quantity                 decimal.Decimal
	EstimatedConsumptionTime string // ya normalizado ("3 semanas", "N/A")
}

// StockCost valoración del stock de un SKU al costo medio.
type StockCost struct {
	SKU           string
	Description   string
	Quantity      decimal.Decimal
	UnitMeasure   string
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	Active        bool
	LastEntryCost *decimal.Decimal
}
