package usecase

import (
	"fmt"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// PreferencesUseCase preferencias de accesibilidad guardadas en la sesión.
type PreferencesUseCase struct{}

// NewPreferencesUseCase construye el caso de uso.
func NewPreferencesUseCase() *PreferencesUseCase {
	return &PreferencesUseCase{}
}

// Get preferencias actuales con sus valores derivados.
func (uc *PreferencesUseCase) Get(s *entity.Session) dto.PreferencesResponse {
	return ToPreferencesResponse(s.Preferences())
}

// Update reemplaza las preferencias. Un tamaño vacío conserva el actual.
func (uc *PreferencesUseCase) Update(s *entity.Session, in dto.PreferencesDTO) (*dto.PreferencesResponse, error) {
	p := s.Preferences()
	if in.FontSize != "" {
		if !entity.ValidFontSize(in.FontSize) {
			return nil, fmt.Errorf("tamaño de fuente desconocido %q: %w", in.FontSize, domain.ErrInvalidInput)
		}
		p.FontSize = in.FontSize
	}
	p.HighContrast = in.HighContrast
	p.ReducedMotion = in.ReducedMotion
	s.SetPreferences(p)
	out := ToPreferencesResponse(p)
	return &out, nil
}

// Reset vuelve a los valores por defecto.
func (uc *PreferencesUseCase) Reset(s *entity.Session) dto.PreferencesResponse {
	s.SetPreferences(entity.DefaultPreferences())
	return ToPreferencesResponse(s.Preferences())
}

// ToPreferencesResponse preferencias con multiplicador, clases y variables CSS.
func ToPreferencesResponse(p entity.Preferences) dto.PreferencesResponse {
	return dto.PreferencesResponse{
		PreferencesDTO:     ToPreferencesDTO(p),
		FontSizeMultiplier: p.FontSizeMultiplier(),
		Classes:            p.Classes(),
		CSSVariables:       p.CSSVariables(),
	}
}

// ToPreferencesDTO forma plana de las preferencias.
func ToPreferencesDTO(p entity.Preferences) dto.PreferencesDTO {
	return dto.PreferencesDTO{FontSize: p.FontSize, HighContrast: p.HighContrast, ReducedMotion: p.ReducedMotion}
}
