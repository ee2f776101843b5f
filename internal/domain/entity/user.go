package entity

// Roles de navegación derivados del usuario del backend.
const (
	RoleMaster   = "master"   // isMaster o superusuario: administra usuarios
	RoleStaff    = "staff"    // isStaff: registra y corrige transacciones
	RoleOperator = "operator" // resto: sólo consulta
)

// User usuario autenticado del backend (recurso users / current-user-info).
type User struct {
	ID          int64
	Username    string
	Email       string
	FirstName   string
	LastName    string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
	IsMaster    bool
	Permissions []string
}

// Role devuelve el rol de navegación del usuario.
func (u *User) Role() string {
	if u == nil {
		return ""
	}
	switch {
	case u.IsMaster || u.IsSuperuser:
		return RoleMaster
	case u.IsStaff:
		return RoleStaff
	default:
		return RoleOperator
	}
}

// HasPermission indica si el usuario tiene un permiso explícito. Master los tiene todos.
func (u *User) HasPermission(p string) bool {
	if u == nil {
		return false
	}
	if u.Role() == RoleMaster {
		return true
	}
	for _, have := range u.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

// InventoryUser usuario de inventário asociado (mat_usuario) usado en entradas y salidas.
type InventoryUser struct {
	ID   int64
	Name string
}
