package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zonas disponibles sin zoneinfo del sistema

	"github.com/spf13/viper"
)

// Motores de recálculo de costos soportados.
const (
	CostEngineBackend = "backend" // el backend valida y recalcula en una sola llamada
	CostEngineClient  = "client"  // el gateway reproduce el histórico y persiste cada salida
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	API     APIConfig
	Cache   CacheConfig
	Session SessionConfig
	Docs    DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // zona de las fechas de transacciones e informes
}

// Location zona horaria configurada; UTC si no se puede cargar.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HTTPConfig configuración del servidor HTTP del gateway.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig configuración del backend REST de control de estoque.
type APIConfig struct {
	BaseURL         string
	Timeout         time.Duration // timeout fijo por petición
	CostEngine      string        // backend | client
	DefaultPageSize int
}

// CacheConfig configuración de la caché de listados de transacciones.
type CacheConfig struct {
	TTL time.Duration
}

// SessionConfig configuración de las sesiones del gateway.
type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

// DocsConfig ruta del swagger.json servido en /docs.
type DocsConfig struct {
	SwaggerFile string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, COST_ENGINE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "stockcontrol-gateway"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "APP_TIMEZONE", "UTC"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		API: APIConfig{
			BaseURL:         strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8000"), "/"),
			Timeout:         getSeconds(v, "API_TIMEOUT_SECONDS", 10),
			CostEngine:      strings.ToLower(getString(v, "COST_ENGINE", CostEngineBackend)),
			DefaultPageSize: getInt(v, "DEFAULT_PAGE_SIZE", 20),
		},
		Cache: CacheConfig{
			TTL: getSeconds(v, "CACHE_TTL_SECONDS", 30),
		},
		Session: SessionConfig{
			IdleTimeout:   time.Duration(getInt(v, "SESSION_IDLE_MINUTES", 60)) * time.Minute,
			SweepInterval: getSeconds(v, "SESSION_SWEEP_SECONDS", 60),
		},
		Docs: DocsConfig{
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.API.CostEngine != CostEngineBackend && c.API.CostEngine != CostEngineClient {
		return fmt.Errorf("config: COST_ENGINE inválido %q (backend|client)", c.API.CostEngine)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: API_BASE_URL requerido")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("config: APP_TIMEZONE inválido %q: %w", c.App.Timezone, err)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("config: CACHE_TTL_SECONDS debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getSeconds(v *viper.Viper, key string, def int) time.Duration {
	return time.Duration(getInt(v, key, def)) * time.Second
}
