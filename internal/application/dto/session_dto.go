package dto

import "time"

// LoginRequest credenciales del backend.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse sesión del gateway tras el login.
type SessionResponse struct {
	SessionID      string            `json:"sessionId"`
	User           *UserResponse     `json:"user,omitempty"`
	Role           string            `json:"role"`
	AccessExpires  *time.Time        `json:"accessExpiresAt,omitempty"`
	RefreshExpires *time.Time        `json:"refreshExpiresAt,omitempty"`
	Preferences    PreferencesDTO    `json:"preferences"`
}

// PreferencesDTO preferencias de accesibilidad.
type PreferencesDTO struct {
	FontSize      string `json:"fontSize"`
	HighContrast  bool   `json:"highContrast"`
	ReducedMotion bool   `json:"reducedMotion"`
}

// PreferencesResponse preferencias con los valores derivados.
type PreferencesResponse struct {
	PreferencesDTO
	FontSizeMultiplier float64           `json:"fontSizeMultiplier"`
	Classes            []string          `json:"classes"`
	CSSVariables       map[string]string `json:"cssVariables"`
}

// NavigationEntry entrada del menú visible para el rol.
type NavigationEntry struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}
