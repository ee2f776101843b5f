package entity

import (
	"fmt"
	"strings"
	"time"
)

// Formatos de fecha y hora canónicos (ISO) que usa todo el dominio.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// legacySlashDate es el formato localizado DD/MM/YYYY que algunos endpoints del backend
// devuelven. Sólo se acepta en la frontera de ingesta y se convierte a ISO.
const legacySlashDate = "02/01/2006"

var timeLayouts = []string{"15:04:05.999999", TimeLayout, "15:04"}

// NormalizeDate convierte una fecha recibida del backend al formato ISO.
// Acepta YYYY-MM-DD y DD/MM/YYYY; cualquier otro formato es un error.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err == nil {
		return s, nil
	}
	if d, err := time.Parse(legacySlashDate, s); err == nil {
		return d.Format(DateLayout), nil
	}
	return "", fmt.Errorf("fecha inválida %q", s)
}

// ParseOccurredAt combina fecha y hora del detalle en un instante. La hora es opcional.
func ParseOccurredAt(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	iso, err := NormalizeDate(date)
	if err != nil {
		return time.Time{}, err
	}
	day, err := time.ParseInLocation(DateLayout, iso, loc)
	if err != nil {
		return time.Time{}, err
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return day, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, clock); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("hora inválida %q", clock)
}
