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

// UserUseCase administración de usuarios del backend.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto del backend.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List listado paginado.
func (uc *UserUseCase) List(ctx context.Context, f repository.UserFilter) (dto.PageResponse[dto.UserResponse], error) {
	page, err := uc.repo.List(ctx, f)
	if err != nil {
		return dto.PageResponse[dto.UserResponse]{}, err
	}
	return dto.NewPageResponse(page, func(u entity.User) dto.UserResponse { return *ToUserResponse(&u) }), nil
}

// Get obtiene un usuario por ID.
func (uc *UserUseCase) Get(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// Current usuario autenticado.
func (uc *UserUseCase) Current(ctx context.Context) (*dto.UserResponse, error) {
	u, err := uc.repo.Current(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// InventoryUser usuario de inventário asociado a la cuenta.
func (uc *UserUseCase) InventoryUser(ctx context.Context) (*entity.InventoryUser, error) {
	return uc.repo.InventoryUser(ctx)
}

// Create registra un usuario. Las contraseñas deben coincidir.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("usuario y contraseña obligatorios: %w", domain.ErrInvalidInput)
	}
	if in.Password != in.Password2 {
		return nil, fmt.Errorf("las contraseñas no coinciden: %w", domain.ErrInvalidInput)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	u, err := uc.repo.Register(ctx, repository.UserRegistration{
		Username:    in.Username,
		Email:       strings.TrimSpace(in.Email),
		Password:    in.Password,
		Password2:   in.Password2,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		IsActive:    active,
		IsStaff:     in.IsStaff,
		IsSuperuser: in.IsSuperuser,
		Permissions: in.PermissionsList,
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// Update modificación parcial.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Password != nil || in.Password2 != nil {
		if in.Password == nil || in.Password2 == nil || *in.Password != *in.Password2 {
			return nil, fmt.Errorf("las contraseñas no coinciden: %w", domain.ErrInvalidInput)
		}
	}
	u, err := uc.repo.Update(ctx, id, repository.UserUpdate{
		Username:    in.Username,
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		IsActive:    in.IsActive,
		IsStaff:     in.IsStaff,
		IsSuperuser: in.IsSuperuser,
		Password:    in.Password,
		Password2:   in.Password2,
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// UpdatePermissions reemplaza la lista de permisos del usuario.
func (uc *UserUseCase) UpdatePermissions(ctx context.Context, id int64, permissions []string) (*dto.UserResponse, error) {
	perms := make([]string, 0, len(permissions))
	seen := make(map[string]bool, len(permissions))
	for _, p := range permissions {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		perms = append(perms, p)
	}
	u, err := uc.repo.Update(ctx, id, repository.UserUpdate{Permissions: &perms})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// ToUserResponse mapea la entidad al DTO de salida.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	return &dto.UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		IsActive:        u.IsActive,
		IsStaff:         u.IsStaff,
		IsSuperuser:     u.IsSuperuser,
		IsMaster:        u.IsMaster,
		Role:            u.Role(),
		PermissionsList: perms,
	}
}
