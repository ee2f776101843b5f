package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

const (
	// TokenPath emisión de tokens SimpleJWT.
	TokenPath = "/token/"
	// RefreshPath renovación del token de acceso.
	RefreshPath = "/token/refresh/"

	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 16 << 20
)

// Request petición al backend. Path es relativo a la URL base ("/api/v1/itens/").
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Client cliente REST del backend de control de estoque ligado a una sesión.
// Añade el bearer token, normaliza las claves de respuesta a camelCase y ante un 401
// renueva el token una única vez y reintenta la petición una única vez.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *entity.Session
	log        zerolog.Logger

	refreshMu sync.Mutex
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger fija el logger del cliente.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient construye el cliente para una sesión.
func NewClient(baseURL string, timeout time.Duration, session *entity.Session, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    session,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session sesión asociada al cliente.
func (c *Client) Session() *entity.Session {
	return c.session
}

// Get atajo para GET.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post atajo para POST.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put atajo para PUT.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Patch atajo para PATCH.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete atajo para DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
}

// Do ejecuta la petición y decodifica la respuesta (ya en camelCase) en out.
// out puede ser nil. Las respuestas no 2xx devuelven *HTTPError.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var payload []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("api: serializar cuerpo %s %s: %w", req.Method, req.Path, err)
		}
		payload = b
	}

	token := c.session.AccessToken()
	status, body, err := c.send(ctx, req, payload, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && !isTokenPath(req.Path) {
		c.log.Info().Str("path", req.Path).Msg("401 del backend, renovando token")
		if err := c.refreshAfter(ctx, token); err != nil {
			return err
		}
		status, body, err = c.send(ctx, req, payload, c.session.AccessToken())
		if err != nil {
			return err
		}
	}

	if status < 200 || status >= 300 {
		return newHTTPError(req.Method, req.Path, status, body)
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return decodeCamel(body, out)
}

// RefreshAccessToken renueva el token de acceso con el refresh token de la sesión.
// Si falla la sesión se limpia y se devuelve domain.ErrSessionExpired.
func (c *Client) RefreshAccessToken(ctx context.Context) error {
	return c.refreshAfter(ctx, "")
}

// refreshAfter renueva el token salvo que otra petición ya lo haya cambiado desde
// que se envió con staleToken.
func (c *Client) refreshAfter(ctx context.Context, staleToken string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if staleToken != "" {
		if current := c.session.AccessToken(); current != "" && current != staleToken {
			return nil
		}
	}

	refresh := c.session.RefreshToken()
	if refresh == "" {
		c.session.Clear()
		return fmt.Errorf("api: sin refresh token: %w", domain.ErrSessionExpired)
	}

	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: RefreshPath, Body: map[string]string{"refresh": refresh}}, &out)
	if err == nil && out.Access == "" {
		err = errors.New("respuesta sin token de acceso")
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("renovación de token fallida, cerrando sesión")
		c.session.Clear()
		return fmt.Errorf("api: renovar token: %w: %w", domain.ErrSessionExpired, err)
	}

	if out.Refresh != "" {
		c.session.SetTokens(out.Access, out.Refresh)
	} else {
		c.session.SetAccessToken(out.Access)
	}
	c.log.Info().Msg("token de acceso renovado")
	return nil
}

func (c *Client) send(ctx context.Context, req Request, payload []byte, token string) (int, []byte, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("api: crear petición %s %s: %w", req.Method, req.Path, err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" && !isTokenPath(req.Path) {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("api: %s %s cancelada: %w", req.Method, req.Path, ctx.Err())
		}
		return 0, nil, fmt.Errorf("api: %s %s: %w: %w", req.Method, req.Path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("api: leer respuesta %s %s: %w", req.Method, req.Path, err)
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("backend")

	return resp.StatusCode, body, nil
}

// decodeCamel decodifica el JSON, normaliza las claves y lo vuelca en out.
// UseNumber conserva los decimales tal como llegan.
func decodeCamel(body []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("api: decodificar respuesta: %w", err)
	}
	normalized, err := json.Marshal(CamelizeKeys(raw))
	if err != nil {
		return fmt.Errorf("api: normalizar respuesta: %w", err)
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return fmt.Errorf("api: decodificar respuesta: %w", err)
	}
	return nil
}

func isTokenPath(path string) bool {
	return strings.HasPrefix(path, TokenPath)
}
