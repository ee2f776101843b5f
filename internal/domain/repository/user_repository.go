package repository

import (
	"context"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// UserRegistration alta de usuario (register/).
type UserRegistration struct {
	Username    string
	Email       string
	Password    string
	Password2   string
	FirstName   string
	LastName    string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
	Permissions []string
}

// UserUpdate modificación parcial (PATCH users/{id}/). Los nil no se envían.
type UserUpdate struct {
	Username    *string
	Email       *string
	FirstName   *string
	LastName    *string
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
	Permissions *[]string
	Password    *string
	Password2   *string
}

// UserRepository define el puerto hacia los recursos de usuarios del backend.
type UserRepository interface {
	List(ctx context.Context, f UserFilter) (*Page[entity.User], error)
	Get(ctx context.Context, id int64) (*entity.User, error)
	Current(ctx context.Context) (*entity.User, error)
	InventoryUser(ctx context.Context) (*entity.InventoryUser, error)
	Register(ctx context.Context, r UserRegistration) (*entity.User, error)
	Update(ctx context.Context, id int64, u UserUpdate) (*entity.User, error)
	Delete(ctx context.Context, id int64) error
}

// Tokens par de tokens SimpleJWT.
type Tokens struct {
	Access  string
	Refresh string
}

// TokenRepository emisión de tokens (token/). El refresh lo gestiona el cliente HTTP.
type TokenRepository interface {
	Obtain(ctx context.Context, username, password string) (*Tokens, error)
}
