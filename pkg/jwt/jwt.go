package jwt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims corresponde a los tokens emitidos por el backend (SimpleJWT):
// claims estándar más user_id y token_type.
type Claims struct {
	jwt.RegisteredClaims
	UserID    json.Number `json:"user_id"`
	TokenType string      `json:"token_type"` // "access" | "refresh"
}

// Inspect decodifica el token SIN verificar la firma. El gateway no conoce el secreto
// del backend; sólo lee expiración y usuario para gestionar la sesión.
func Inspect(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("jwt: token vacío")
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: token malformado: %w", err)
	}
	return claims, nil
}

// ExpiresAt devuelve la expiración del token; ok=false si no es decodificable o no tiene exp.
func ExpiresAt(tokenString string) (time.Time, bool) {
	claims, err := Inspect(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// IsExpired indica si el token ya expiró en now. Un token sin exp no expira.
func IsExpired(tokenString string, now time.Time) bool {
	exp, ok := ExpiresAt(tokenString)
	if !ok {
		return false
	}
	return !now.Before(exp)
}

// Generate firma un token HS256 con el formato del backend. Lo usan los tests y el
// backend simulado; el gateway nunca emite tokens propios.
func Generate(secret, userID, tokenType string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    json.Number(userID),
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
