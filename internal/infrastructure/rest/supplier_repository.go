package rest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/api"
)

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

// SupplierRepository implementación REST de repository.SupplierRepository.
type SupplierRepository struct {
	client *api.Client
}

// NewSupplierRepository construye el repositorio.
func NewSupplierRepository(c *api.Client) *SupplierRepository {
	return &SupplierRepository{client: c}
}

type supplierWire struct {
	CodFornecedor  int64  `json:"codFornecedor,omitempty"`
	NomeFornecedor string `json:"nomeFornecedor"`
	Active         bool   `json:"active"`
}

func (w supplierWire) toEntity() entity.Supplier {
	return entity.Supplier{ID: w.CodFornecedor, Name: w.NomeFornecedor, Active: w.Active}
}

func supplierPath(id int64) string {
	return pathSuppliers + strconv.FormatInt(id, 10) + "/"
}

func (r *SupplierRepository) List(ctx context.Context, f repository.SupplierFilter) (*repository.Page[entity.Supplier], error) {
	var out wirePage[supplierWire]
	if err := r.client.Get(ctx, pathSuppliers, f.Query(), &out); err != nil {
		return nil, fmt.Errorf("listar fornecedores: %w", err)
	}
	return toPage(&out, f.Page, func(w supplierWire) (entity.Supplier, error) { return w.toEntity(), nil })
}

// Create omite el id: lo asigna el backend.
func (r *SupplierRepository) Create(ctx context.Context, s *entity.Supplier) (*entity.Supplier, error) {
	var out supplierWire
	body := supplierWire{NomeFornecedor: s.Name, Active: s.Active}
	if err := r.client.Post(ctx, pathSuppliers, body, &out); err != nil {
		return nil, fmt.Errorf("crear fornecedor: %w", err)
	}
	created := out.toEntity()
	return &created, nil
}

func (r *SupplierRepository) Update(ctx context.Context, s *entity.Supplier) (*entity.Supplier, error) {
	var out supplierWire
	body := supplierWire{CodFornecedor: s.ID, NomeFornecedor: s.Name, Active: s.Active}
	if err := r.client.Put(ctx, supplierPath(s.ID), body, &out); err != nil {
		return nil, fmt.Errorf("actualizar fornecedor %d: %w", s.ID, err)
	}
	updated := out.toEntity()
	return &updated, nil
}

func (r *SupplierRepository) Delete(ctx context.Context, id int64) error {
	if err := r.client.Delete(ctx, supplierPath(id)); err != nil {
		return fmt.Errorf("eliminar fornecedor %d: %w", id, err)
	}
	return nil
}
