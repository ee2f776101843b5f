package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/api"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newSession(access, refresh string) *entity.Session {
	s := entity.NewSession(time.Now())
	s.SetTokens(access, refresh)
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_NormalizaClavesACamelCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, map[string]any{
			"results": []any{map[string]any{"cod_sku": "A1", "descricao_item": "Parafuso", "unid_medida": "UN", "valor_unit": "10.50"}},
			"count":   1,
		})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, 5*time.Second, newSession("tok", "ref"))

	var out struct {
		Results []struct {
			CodSku        string `json:"codSku"`
			DescricaoItem string `json:"descricaoItem"`
			ValorUnit     string `json:"valorUnit"`
		} `json:"results"`
		Count int `json:"count"`
	}
	err := c.Get(context.Background(), "/api/v1/itens/", map[string][]string{"page": {"2"}}, &out)
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "A1", out.Results[0].CodSku)
	assert.Equal(t, "Parafuso", out.Results[0].DescricaoItem)
	assert.Equal(t, "10.50", out.Results[0].ValorUnit)
	assert.Equal(t, 1, out.Count)
}

func TestSnakeToCamel(t *testing.T) {
	assert.Equal(t, "codSku", api.SnakeToCamel("cod_sku"))
	assert.Equal(t, "estimatedConsumptionTime", api.SnakeToCamel("estimated_consumption_time"))
	assert.Equal(t, "page_2", api.SnakeToCamel("page_2"), "sólo se pliega _ seguido de minúscula")
	assert.Equal(t, "alreadyCamel", api.SnakeToCamel("alreadyCamel"))
	assert.Equal(t, "x_Y", api.SnakeToCamel("x_Y"))

	got := api.CamelizeKeys([]any{map[string]any{"a_b": map[string]any{"c_d": []any{map[string]any{"e_f": 1}}}}})
	assert.Equal(t, []any{map[string]any{"aB": map[string]any{"cD": []any{map[string]any{"eF": 1}}}}}, got)
}

// Caso: 401 → un único refresh → reintento con el token nuevo.
func TestClient_401RenuevaUnaVezYReintenta(t *testing.T) {
	var refreshCalls, resourceCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case api.RefreshPath:
			atomic.AddInt32(&refreshCalls, 1)
			assert.Empty(t, r.Header.Get("Authorization"), "los endpoints de token no llevan bearer")
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ref", body["refresh"])
			writeJSON(w, http.StatusOK, map[string]string{"access": "new"})
		default:
			atomic.AddInt32(&resourceCalls, 1)
			if r.Header.Get("Authorization") != "Bearer new" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expirado"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
		}
	}))
	defer srv.Close()

	session := newSession("old", "ref")
	c := api.NewClient(srv.URL, 5*time.Second, session)

	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/api/v1/stocks/", nil, &out))
	assert.Equal(t, "yes", out["ok"])
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&resourceCalls))
	assert.Equal(t, "new", session.AccessToken())
	assert.Equal(t, "ref", session.RefreshToken())
}

// Caso: el reintento vuelve a dar 401 → no hay segundo refresh.
func TestClient_SegundoUnauthorizedNoRenuevaDeNuevo(t *testing.T) {
	var refreshCalls, resourceCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == api.RefreshPath {
			atomic.AddInt32(&refreshCalls, 1)
			writeJSON(w, http.StatusOK, map[string]string{"access": "new"})
			return
		}
		atomic.AddInt32(&resourceCalls, 1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "no"})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, 5*time.Second, newSession("old", "ref"))
	err := c.Get(context.Background(), "/api/v1/stocks/", nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&resourceCalls))
}

// Caso: el refresh falla → sesión limpia, ErrSessionExpired, sin reintento.
func TestClient_RefreshFallidoLimpiaSesion(t *testing.T) {
	var resourceCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == api.RefreshPath {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
			return
		}
		atomic.AddInt32(&resourceCalls, 1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "expirado"})
	}))
	defer srv.Close()

	session := newSession("old", "ref")
	session.SetUser(&entity.User{ID: 3, Username: "op"})
	c := api.NewClient(srv.URL, 5*time.Second, session)

	err := c.Get(context.Background(), "/api/v1/itens/", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, int32(1), atomic.LoadInt32(&resourceCalls), "no debe reintentarse la petición")
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.RefreshToken())
	assert.Nil(t, session.User())
}

func TestClient_EndpointDeTokenNoDisparaRefresh(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, 5*time.Second, newSession("", ""))
	err := c.Post(context.Background(), api.TokenPath, map[string]string{"username": "x", "password": "y"}, nil)

	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "No active account found with the given credentials", httpErr.Detail)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPError_MapeoASentinelas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/404/":
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Não encontrado."})
		case "/400/":
			writeJSON(w, http.StatusBadRequest, map[string]any{"password": []string{"As senhas não coincidem."}})
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("bad gateway"))
		}
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, 5*time.Second, newSession("tok", "ref"))
	ctx := context.Background()

	err := c.Get(ctx, "/404/", nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = c.Get(ctx, "/400/", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "password: As senhas não coincidem.", httpErr.Detail)

	err = c.Get(ctx, "/502/", nil, nil)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "bad gateway", httpErr.Detail)
}

func TestClient_DeleteSinCuerpo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL+"/", 5*time.Second, newSession("tok", "ref"))
	require.NoError(t, c.Delete(context.Background(), "/api/v1/itens/A1/"))
}
