package dto

// SupplierRequest alta o modificación de un fornecedor.
type SupplierRequest struct {
	NomeFornecedor string `json:"nomeFornecedor" validate:"required"`
	Active         *bool  `json:"active"`
}

// SupplierResponse salida de un fornecedor.
type SupplierResponse struct {
	CodFornecedor  int64  `json:"codFornecedor"`
	NomeFornecedor string `json:"nomeFornecedor"`
	Active         bool   `json:"active"`
}
