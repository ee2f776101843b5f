package http_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/stockcontrol-gateway/internal/interfaces/http"
	"github.com/jhoicas/stockcontrol-gateway/pkg/jwt"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestSessionRegistry_ExpiraPorInactividad(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	registry := apphttp.NewSessionRegistry(bareFactory, 30*time.Minute, apphttp.WithRegistryClock(clock.Now))

	id, _ := registry.Create()
	clock.Advance(20 * time.Minute)
	_, ok := registry.Get(id)
	require.True(t, ok, "la actividad renueva la sesión")

	clock.Advance(25 * time.Minute)
	_, ok = registry.Get(id)
	assert.True(t, ok, "25 min desde la última actividad")

	clock.Advance(31 * time.Minute)
	_, ok = registry.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())
}

// Caso: Sweep elimina inactivas y las de refresh token vencido; conserva el resto.
func TestSessionRegistry_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	registry := apphttp.NewSessionRegistry(bareFactory, time.Hour, apphttp.WithRegistryClock(clock.Now))

	expiredRefresh, err := jwt.Generate("s", "1", "refresh", -time.Minute)
	require.NoError(t, err)
	validRefresh, err := jwt.Generate("s", "2", "refresh", time.Hour)
	require.NoError(t, err)

	_, stale := registry.Create()
	stale.Session.SetTokens("a", expiredRefresh)
	keepID, keep := registry.Create()
	keep.Session.SetTokens("a", validRefresh)
	_, _ = registry.Create() // anónima, activa

	assert.Equal(t, 1, registry.Sweep())
	assert.Equal(t, 2, registry.Len())
	_, ok := registry.Get(keepID)
	assert.True(t, ok)

	clock.Advance(2 * time.Hour)
	assert.Equal(t, 2, registry.Sweep())
	assert.Equal(t, 0, registry.Len())
}
