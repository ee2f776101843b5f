package entity

// Supplier proveedor (recurso fornecedores). ID lo asigna el backend.
type Supplier struct {
	ID     int64
	Name   string
	Active bool
}
