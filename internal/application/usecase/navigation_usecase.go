package usecase

import (
	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// navEntry sección de la aplicación y roles que pueden verla (vacío = todos).
type navEntry struct {
	path  string
	title string
	roles []string
}

var navigation = []navEntry{
	{path: "/", title: "Início"},
	{path: "/estoques", title: "Estoques"},
	{path: "/custos", title: "Custos estoque"},
	{path: "/transacoes", title: "Transações"},
	{path: "/transacao", title: "Transação", roles: []string{entity.RoleStaff, entity.RoleMaster}},
	{path: "/itens", title: "Itens"},
	{path: "/fornecedores", title: "Fornecedores"},
	{path: "/usuarios", title: "Usuários", roles: []string{entity.RoleMaster}},
}

// NavigationService decide qué secciones ve cada rol. Es el único punto que conoce
// el mapa rol → secciones; los guards de rutas del gateway usan los mismos roles.
type NavigationService struct{}

// NewNavigationService construye el servicio.
func NewNavigationService() *NavigationService {
	return &NavigationService{}
}

// Menu secciones visibles para el usuario. Sin usuario sólo la página de login.
func (s *NavigationService) Menu(u *entity.User) []dto.NavigationEntry {
	if u == nil {
		return []dto.NavigationEntry{{Path: "/login", Title: "Login"}}
	}
	role := u.Role()
	out := make([]dto.NavigationEntry, 0, len(navigation))
	for _, e := range navigation {
		if allowed(role, e.roles) {
			out = append(out, dto.NavigationEntry{Path: e.path, Title: e.title})
		}
	}
	return out
}

// CanAccess indica si el usuario puede entrar en la sección.
func (s *NavigationService) CanAccess(u *entity.User, path string) bool {
	if u == nil {
		return path == "/login"
	}
	for _, e := range navigation {
		if e.path == path {
			return allowed(u.Role(), e.roles)
		}
	}
	return false
}

func allowed(role string, roles []string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
