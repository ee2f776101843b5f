package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
)

// SupplierUseCase casos de uso para fornecedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// List listado paginado.
func (uc *SupplierUseCase) List(ctx context.Context, f repository.SupplierFilter) (dto.PageResponse[dto.SupplierResponse], error) {
	page, err := uc.repo.List(ctx, f)
	if err != nil {
		return dto.PageResponse[dto.SupplierResponse]{}, err
	}
	return dto.NewPageResponse(page, toSupplierResponse), nil
}

// Search busca por nombre en la primera página.
func (uc *SupplierUseCase) Search(ctx context.Context, q string) ([]dto.SupplierResponse, error) {
	page, err := uc.repo.List(ctx, repository.SupplierFilter{Page: 1, Name: strings.TrimSpace(q)})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResponse(page, toSupplierResponse).Results, nil
}

// Create da de alta un fornecedor; el código lo asigna el backend.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := supplierFromRequest(0, in)
	if err != nil {
		return nil, err
	}
	created, err := uc.repo.Create(ctx, s)
	if err != nil {
		return nil, err
	}
	out := toSupplierResponse(*created)
	return &out, nil
}

// Update reemplaza un fornecedor existente. El código es obligatorio.
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("código del fornecedor obligatorio: %w", domain.ErrInvalidInput)
	}
	s, err := supplierFromRequest(id, in)
	if err != nil {
		return nil, err
	}
	updated, err := uc.repo.Update(ctx, s)
	if err != nil {
		return nil, err
	}
	out := toSupplierResponse(*updated)
	return &out, nil
}

// Delete elimina un fornecedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("código del fornecedor obligatorio: %w", domain.ErrInvalidInput)
	}
	return uc.repo.Delete(ctx, id)
}

func supplierFromRequest(id int64, in dto.SupplierRequest) (*entity.Supplier, error) {
	name := strings.TrimSpace(in.NomeFornecedor)
	if name == "" {
		return nil, fmt.Errorf("nombre del fornecedor obligatorio: %w", domain.ErrInvalidInput)
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &entity.Supplier{ID: id, Name: name, Active: active}, nil
}

func toSupplierResponse(s entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{CodFornecedor: s.ID, NomeFornecedor: s.Name, Active: s.Active}
}
