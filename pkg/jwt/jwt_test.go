package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_LeeClaimsSinSecreto(t *testing.T) {
	tok, err := Generate("secreto-backend", "42", "access", time.Hour)
	require.NoError(t, err)

	claims, err := Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID.String())
	assert.Equal(t, "access", claims.TokenType)
	require.NotNil(t, claims.ExpiresAt)
}

func TestIsExpired(t *testing.T) {
	tok, err := Generate("s", "1", "refresh", time.Minute)
	require.NoError(t, err)

	assert.False(t, IsExpired(tok, time.Now()))
	assert.True(t, IsExpired(tok, time.Now().Add(2*time.Minute)))
}

func TestInspect_TokenMalformado(t *testing.T) {
	_, err := Inspect("token.invalido")
	assert.Error(t, err)

	_, ok := ExpiresAt("")
	assert.False(t, ok)
	assert.False(t, IsExpired("basura", time.Now()), "un token ilegible no se considera expirado")
}
