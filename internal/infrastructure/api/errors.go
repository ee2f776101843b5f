package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
)

// HTTPError respuesta no 2xx del backend.
type HTTPError struct {
	StatusCode int
	Method     string
	Path       string
	Body       []byte
	Detail     string // detail/message del cuerpo o errores de validación aplanados
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap permite errors.Is contra los errores de dominio.
func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	default:
		return domain.ErrUpstream
	}
}

func newHTTPError(method, path string, status int, body []byte) *HTTPError {
	return &HTTPError{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Body:       body,
		Detail:     extractDetail(body),
	}
}

// extractDetail obtiene un mensaje legible de un cuerpo de error DRF:
// {"detail": "..."}, {"message": "..."} o {"campo": ["msg", ...]}.
func extractDetail(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return strings.TrimSpace(truncate(string(body), 200))
	}
	for _, key := range []string{"detail", "message", "error"} {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := obj[k].(type) {
		case []any:
			msgs := make([]string, 0, len(v))
			for _, m := range v {
				msgs = append(msgs, fmt.Sprint(m))
			}
			parts = append(parts, k+": "+strings.Join(msgs, " "))
		case string:
			parts = append(parts, k+": "+v)
		}
	}
	return strings.Join(parts, "; ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
