package entity

import "fmt"

// Tamaños de fuente soportados.
const (
	FontSmall      = "small"
	FontNormal     = "normal"
	FontLarge      = "large"
	FontExtraLarge = "extra-large"
)

var fontMultipliers = map[string]float64{
	FontSmall:      0.875,
	FontNormal:     1,
	FontLarge:      1.125,
	FontExtraLarge: 1.25,
}

// Preferences configuración de accesibilidad de la sesión.
type Preferences struct {
	FontSize      string
	HighContrast  bool
	ReducedMotion bool
}

// DefaultPreferences fuente normal, sin contraste alto ni movimiento reducido.
func DefaultPreferences() Preferences {
	return Preferences{FontSize: FontNormal}
}

// ValidFontSize indica si el tamaño es conocido.
func ValidFontSize(size string) bool {
	_, ok := fontMultipliers[size]
	return ok
}

// FontSizeMultiplier multiplicador rem del tamaño de fuente.
func (p Preferences) FontSizeMultiplier() float64 {
	if m, ok := fontMultipliers[p.FontSize]; ok {
		return m
	}
	return 1
}

// Classes clases CSS a aplicar al documento.
func (p Preferences) Classes() []string {
	classes := []string{}
	if p.FontSize != FontNormal && ValidFontSize(p.FontSize) {
		classes = append(classes, "font-size-"+p.FontSize)
	}
	if p.HighContrast {
		classes = append(classes, "high-contrast")
	}
	if p.ReducedMotion {
		classes = append(classes, "reduced-motion")
	}
	return classes
}

// CSSVariables variables CSS derivadas del multiplicador.
func (p Preferences) CSSVariables() map[string]string {
	m := p.FontSizeMultiplier()
	rem := func(f float64) string { return fmt.Sprintf("%grem", f) }
	return map[string]string{
		"--accessibility-font-size":             rem(m),
		"--accessibility-font-size-small":       rem(m * 0.875),
		"--accessibility-font-size-large":       rem(m * 1.125),
		"--accessibility-font-size-extra-large": rem(m * 1.25),
	}
}
