package api

import "strings"

// CamelizeKeys convierte recursivamente las claves de objetos snake_case a camelCase.
// Sólo se pliega "_" seguido de minúscula ("cod_sku" → "codSku"); "page_2" o "_id"
// inicial con mayúscula se conservan tal cual. Los valores no se tocan.
func CamelizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[SnakeToCamel(k)] = CamelizeKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = CamelizeKeys(val)
		}
		return out
	default:
		return v
	}
}

// SnakeToCamel convierte una clave snake_case a camelCase.
func SnakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' && i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
			b.WriteByte(s[i+1] - ('a' - 'A'))
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
