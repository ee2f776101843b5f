package cache

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTTL vida de una entrada desde su creación.
const DefaultTTL = 30 * time.Second

type entry[T any] struct {
	data      T
	createdAt time.Time
}

// Cache caché en memoria de respuestas indexada por huella de la petición
// (endpoint lógico + parámetros). Segura para uso concurrente.
type Cache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[T]
	log     zerolog.Logger
}

// Option configura la caché.
type Option[T any] func(*Cache[T])

// WithClock inyecta el reloj (tests).
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cache[T]) { c.now = now }
}

// WithLogger fija el logger.
func WithLogger[T any](l zerolog.Logger) Option[T] {
	return func(c *Cache[T]) { c.log = l }
}

// New crea una caché con el TTL indicado (DefaultTTL si ttl <= 0).
func New[T any](ttl time.Duration, opts ...Option[T]) *Cache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[T]),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key huella de una petición: endpoint lógico + parámetros ordenados.
func Key(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

// Get devuelve la entrada si existe y tiene menos de TTL; si expiró la elimina.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.createdAt) >= c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return e.data, true
}

// Set guarda data con la hora actual.
func (c *Cache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{data: data, createdAt: c.now()}
}

// ClearEndpoint elimina todas las claves que empiezan por el endpoint lógico.
func (c *Cache[T]) ClearEndpoint(endpoint string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k := range c.entries {
		if strings.HasPrefix(k, endpoint) {
			delete(c.entries, k)
			removed++
		}
	}
	if removed > 0 {
		c.log.Debug().Str("endpoint", endpoint).Int("removed", removed).Msg("caché invalidada")
	}
	return removed
}

// Len número de entradas almacenadas (incluidas las expiradas aún no purgadas).
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
