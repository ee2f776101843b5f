package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/auth"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeTokens struct {
	tokens *repository.Tokens
	err    error
}

func (f fakeTokens) Obtain(context.Context, string, string) (*repository.Tokens, error) {
	return f.tokens, f.err
}

type fakeUsers struct {
	repository.UserRepository
	user *entity.User
	err  error
}

func (f fakeUsers) Current(context.Context) (*entity.User, error) { return f.user, f.err }

type fakeRefresher struct{ calls int }

func (f *fakeRefresher) RefreshAccessToken(context.Context) error {
	f.calls++
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_GuardaTokensYUsuario(t *testing.T) {
	access, err := jwt.Generate("s", "7", "access", 5*time.Minute)
	require.NoError(t, err)
	refresh, err := jwt.Generate("s", "7", "refresh", 24*time.Hour)
	require.NoError(t, err)

	s := entity.NewSession(time.Now())
	uc := auth.NewAuthUseCase(s,
		fakeTokens{tokens: &repository.Tokens{Access: access, Refresh: refresh}},
		fakeUsers{user: &entity.User{ID: 7, Username: "ana", IsStaff: true}},
		&fakeRefresher{},
	)

	u, err := uc.Login(context.Background(), " ana ", "secreta")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, u.Role())
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "ana", s.User().Username)

	accessExp, refreshExp := uc.TokenExpiry()
	require.NotNil(t, accessExp)
	require.NotNil(t, refreshExp)
	assert.True(t, refreshExp.After(*accessExp))
}

// Caso: tokens obtenidos pero current-user-info falla → sesión limpia.
func TestLogin_FalloDeUsuarioLimpiaSesion(t *testing.T) {
	s := entity.NewSession(time.Now())
	uc := auth.NewAuthUseCase(s,
		fakeTokens{tokens: &repository.Tokens{Access: "a", Refresh: "r"}},
		fakeUsers{err: errors.New("timeout")},
		&fakeRefresher{},
	)

	_, err := uc.Login(context.Background(), "ana", "x")
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.RefreshToken())
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := entity.NewSession(time.Now())
	uc := auth.NewAuthUseCase(s, fakeTokens{err: domain.ErrUnauthorized}, fakeUsers{}, &fakeRefresher{})

	_, err := uc.Login(context.Background(), "ana", "mal")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRefreshYLogout(t *testing.T) {
	s := entity.NewSession(time.Now())
	r := &fakeRefresher{}
	uc := auth.NewAuthUseCase(s, fakeTokens{}, fakeUsers{}, r)

	assert.ErrorIs(t, uc.Refresh(context.Background()), domain.ErrSessionExpired)
	assert.Zero(t, r.calls)

	s.SetTokens("a", "r")
	require.NoError(t, uc.Refresh(context.Background()))
	assert.Equal(t, 1, r.calls)

	uc.Logout()
	assert.False(t, s.IsAuthenticated())
}
