package entity

import (
	"sync"
	"time"
)

// Session estado de autenticación de un cliente del gateway: tokens del backend,
// usuario actual y preferencias. Se crea en el login y se pasa explícitamente al
// cliente HTTP y a los servicios.
type Session struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	user         *User
	preferences  Preferences
	lastSeen     time.Time
}

// NewSession crea una sesión vacía (no autenticada).
func NewSession(now time.Time) *Session {
	return &Session{preferences: DefaultPreferences(), lastSeen: now}
}

// AccessToken token de acceso actual.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken token de renovación actual.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// SetTokens guarda ambos tokens tras el login.
func (s *Session) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

// SetAccessToken reemplaza el token de acceso tras un refresh.
func (s *Session) SetAccessToken(access string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
}

// User usuario actual (nil hasta cargar current-user-info).
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser fija el usuario actual.
func (s *Session) SetUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Preferences preferencias de accesibilidad de la sesión.
func (s *Session) Preferences() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preferences
}

// SetPreferences reemplaza las preferencias.
func (s *Session) SetPreferences(p Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = p
}

// IsAuthenticated hay token de acceso.
func (s *Session) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// Clear cierra la sesión: borra tokens y usuario. Las preferencias se conservan.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil
}

// Touch marca actividad.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

// LastSeen última actividad registrada.
func (s *Session) LastSeen() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}
