package rest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/api"
)

var (
	_ repository.UserRepository  = (*UserRepository)(nil)
	_ repository.TokenRepository = (*TokenRepository)(nil)
)

// UserRepository implementación REST de repository.UserRepository.
type UserRepository struct {
	client *api.Client
}

// NewUserRepository construye el repositorio.
func NewUserRepository(c *api.Client) *UserRepository {
	return &UserRepository{client: c}
}

type userWire struct {
	ID              int64    `json:"id"`
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	IsActive        bool     `json:"isActive"`
	IsStaff         bool     `json:"isStaff"`
	IsSuperuser     bool     `json:"isSuperuser"`
	IsMaster        bool     `json:"isMaster"`
	PermissionsList []string `json:"permissionsList"`
}

func (w userWire) toEntity() entity.User {
	return entity.User{
		ID:          w.ID,
		Username:    w.Username,
		Email:       w.Email,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		IsActive:    w.IsActive,
		IsStaff:     w.IsStaff,
		IsSuperuser: w.IsSuperuser,
		IsMaster:    w.IsMaster,
		Permissions: w.PermissionsList,
	}
}

type registerRequest struct {
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Password2       string   `json:"password2"`
	FirstName       string   `json:"firstName,omitempty"`
	LastName        string   `json:"lastName,omitempty"`
	IsActive        bool     `json:"isActive"`
	IsStaff         bool     `json:"isStaff"`
	IsSuperuser     bool     `json:"isSuperuser"`
	PermissionsList []string `json:"permissionsList,omitempty"`
}

type updateRequest struct {
	Username        *string   `json:"username,omitempty"`
	Email           *string   `json:"email,omitempty"`
	FirstName       *string   `json:"firstName,omitempty"`
	LastName        *string   `json:"lastName,omitempty"`
	IsActive        *bool     `json:"isActive,omitempty"`
	IsStaff         *bool     `json:"isStaff,omitempty"`
	IsSuperuser     *bool     `json:"isSuperuser,omitempty"`
	PermissionsList *[]string `json:"permissionsList,omitempty"`
	Password        *string   `json:"password,omitempty"`
	Password2       *string   `json:"password2,omitempty"`
}

func userPath(id int64) string {
	return pathUsers + strconv.FormatInt(id, 10) + "/"
}

func (r *UserRepository) List(ctx context.Context, f repository.UserFilter) (*repository.Page[entity.User], error) {
	var out wirePage[userWire]
	if err := r.client.Get(ctx, pathUsers, f.Query(), &out); err != nil {
		return nil, fmt.Errorf("listar users: %w", err)
	}
	return toPage(&out, f.Page, func(w userWire) (entity.User, error) { return w.toEntity(), nil })
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*entity.User, error) {
	var out userWire
	if err := r.client.Get(ctx, userPath(id), nil, &out); err != nil {
		return nil, fmt.Errorf("obtener user %d: %w", id, err)
	}
	u := out.toEntity()
	return &u, nil
}

func (r *UserRepository) Current(ctx context.Context) (*entity.User, error) {
	var out userWire
	if err := r.client.Get(ctx, pathCurrentUser, nil, &out); err != nil {
		return nil, fmt.Errorf("current-user-info: %w", err)
	}
	u := out.toEntity()
	return &u, nil
}

func (r *UserRepository) InventoryUser(ctx context.Context) (*entity.InventoryUser, error) {
	var out struct {
		ID          int64  `json:"id"`
		NomeUsuario string `json:"nomeUsuario"`
	}
	if err := r.client.Get(ctx, pathInventoryUser, nil, &out); err != nil {
		return nil, fmt.Errorf("current-user-inventory-info: %w", err)
	}
	return &entity.InventoryUser{ID: out.ID, Name: out.NomeUsuario}, nil
}

func (r *UserRepository) Register(ctx context.Context, reg repository.UserRegistration) (*entity.User, error) {
	body := registerRequest{
		Username:        reg.Username,
		Email:           reg.Email,
		Password:        reg.Password,
		Password2:       reg.Password2,
		FirstName:       reg.FirstName,
		LastName:        reg.LastName,
		IsActive:        reg.IsActive,
		IsStaff:         reg.IsStaff,
		IsSuperuser:     reg.IsSuperuser,
		PermissionsList: reg.Permissions,
	}
	var out struct {
		Message string   `json:"message"`
		User    userWire `json:"user"`
	}
	if err := r.client.Post(ctx, pathRegister, body, &out); err != nil {
		return nil, fmt.Errorf("registrar usuario: %w", err)
	}
	u := out.User.toEntity()
	return &u, nil
}

// Update envía PATCH con los campos presentes.
func (r *UserRepository) Update(ctx context.Context, id int64, upd repository.UserUpdate) (*entity.User, error) {
	body := updateRequest{
		Username:        upd.Username,
		Email:           upd.Email,
		FirstName:       upd.FirstName,
		LastName:        upd.LastName,
		IsActive:        upd.IsActive,
		IsStaff:         upd.IsStaff,
		IsSuperuser:     upd.IsSuperuser,
		PermissionsList: upd.Permissions,
		Password:        upd.Password,
		Password2:       upd.Password2,
	}
	if err := r.client.Patch(ctx, userPath(id), body, nil); err != nil {
		return nil, fmt.Errorf("actualizar user %d: %w", id, err)
	}
	// UserUpdateSerializer no devuelve el detalle completo.
	return r.Get(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if err := r.client.Delete(ctx, userPath(id)); err != nil {
		return fmt.Errorf("eliminar user %d: %w", id, err)
	}
	return nil
}

// TokenRepository emisión de tokens contra token/.
type TokenRepository struct {
	client *api.Client
}

// NewTokenRepository construye el repositorio.
func NewTokenRepository(c *api.Client) *TokenRepository {
	return &TokenRepository{client: c}
}

func (r *TokenRepository) Obtain(ctx context.Context, username, password string) (*repository.Tokens, error) {
	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := r.client.Post(ctx, api.TokenPath, body, &out); err != nil {
		return nil, fmt.Errorf("obtener token: %w", err)
	}
	return &repository.Tokens{Access: out.Access, Refresh: out.Refresh}, nil
}
