package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/pkg/jwt"
)

// TokenRefresher renueva el token de acceso de la sesión. Lo implementa *api.Client.
type TokenRefresher interface {
	RefreshAccessToken(ctx context.Context) error
}

// AuthUseCase casos de uso de autenticación contra el backend: login, refresh y logout.
// Opera sobre la sesión a la que está ligado el cliente HTTP.
type AuthUseCase struct {
	session   *entity.Session
	tokens    repository.TokenRepository
	users     repository.UserRepository
	refresher TokenRefresher
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(session *entity.Session, tokens repository.TokenRepository, users repository.UserRepository, refresher TokenRefresher) *AuthUseCase {
	return &AuthUseCase{session: session, tokens: tokens, users: users, refresher: refresher}
}

// Login obtiene los tokens, los guarda en la sesión y carga el usuario actual.
// Ante cualquier fallo la sesión queda limpia.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("usuario y contraseña obligatorios: %w", domain.ErrInvalidInput)
	}
	tokens, err := uc.tokens.Obtain(ctx, username, password)
	if err != nil {
		uc.session.Clear()
		return nil, fmt.Errorf("login: %w", err)
	}
	uc.session.SetTokens(tokens.Access, tokens.Refresh)

	user, err := uc.users.Current(ctx)
	if err != nil {
		uc.session.Clear()
		return nil, fmt.Errorf("login: usuario actual: %w", err)
	}
	uc.session.SetUser(user)
	return user, nil
}

// Refresh renueva el token de acceso. Si falla la sesión queda limpia.
func (uc *AuthUseCase) Refresh(ctx context.Context) error {
	if uc.session.RefreshToken() == "" {
		return domain.ErrSessionExpired
	}
	return uc.refresher.RefreshAccessToken(ctx)
}

// Logout cierra la sesión. Las preferencias se conservan.
func (uc *AuthUseCase) Logout() {
	uc.session.Clear()
}

// TokenExpiry expiración de los tokens de la sesión (nil si no se puede leer).
func (uc *AuthUseCase) TokenExpiry() (access, refresh *time.Time) {
	if exp, ok := jwt.ExpiresAt(uc.session.AccessToken()); ok {
		access = &exp
	}
	if exp, ok := jwt.ExpiresAt(uc.session.RefreshToken()); ok {
		refresh = &exp
	}
	return access, refresh
}
