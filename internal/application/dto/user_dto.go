package dto

// CreateUserRequest alta de usuario (register/). Password2 debe coincidir.
type CreateUserRequest struct {
	Username        string   `json:"username" validate:"required"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	Password2       string   `json:"password2" validate:"required,min=8"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	IsActive        *bool    `json:"isActive"`
	IsStaff         bool     `json:"isStaff"`
	IsSuperuser     bool     `json:"isSuperuser"`
	PermissionsList []string `json:"permissionsList"`
}

// UpdateUserRequest modificación parcial de un usuario.
type UpdateUserRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	IsActive    *bool   `json:"isActive"`
	IsStaff     *bool   `json:"isStaff"`
	IsSuperuser *bool   `json:"isSuperuser"`
	Password    *string `json:"password"`
	Password2   *string `json:"password2"`
}

// UpdatePermissionsRequest reemplaza la lista de permisos.
type UpdatePermissionsRequest struct {
	PermissionsList []string `json:"permissionsList"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID              int64    `json:"id"`
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	IsActive        bool     `json:"isActive"`
	IsStaff         bool     `json:"isStaff"`
	IsSuperuser     bool     `json:"isSuperuser"`
	IsMaster        bool     `json:"isMaster"`
	Role            string   `json:"role"`
	PermissionsList []string `json:"permissionsList"`
}
