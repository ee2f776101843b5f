package format

import (
	"fmt"
	"strconv"
	"strings"
)

// ConsumptionTime normaliza la estimación de consumo que envía el backend
// ("1 dias" → "1 dia", "2 mês" → "2 meses"). Entradas no reconocidas se devuelven tal cual;
// vacío devuelve "N/A".
func ConsumptionTime(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return "N/A"
	}
	parts := strings.SplitN(input, " ", 2)
	if len(parts) != 2 {
		return input
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return input
	}

	switch parts[1] {
	case "dia", "dias":
		return fmt.Sprintf("%d %s", n, plural(n, "dia", "dias"))
	case "semana", "semanas":
		return fmt.Sprintf("%d %s", n, plural(n, "semana", "semanas"))
	case "mês", "meses":
		return fmt.Sprintf("%d %s", n, plural(n, "mês", "meses"))
	case "ano", "anos":
		return fmt.Sprintf("%d %s", n, plural(n, "ano", "anos"))
	}
	return input
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
