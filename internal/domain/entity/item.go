package entity

import "github.com/shopspring/decimal"

// Item artículo del catálogo (recurso itens). El SKU es la clave primaria.
type Item struct {
	SKU         string
	Description string
	UnitMeasure string
	Active      bool
	// Sólo lectura: calculados por el backend en listados.
	Quantity                 *decimal.Decimal
	EstimatedConsumptionTime string
}

// ItemCosts costo medio actual y costo de la última entrada de un SKU.
type ItemCosts struct {
	AverageCost   decimal.Decimal
	LastEntryCost decimal.Decimal
}
