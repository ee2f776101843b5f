package http

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/auth"
	"github.com/jhoicas/stockcontrol-gateway/internal/application/inventory"
	"github.com/jhoicas/stockcontrol-gateway/internal/application/report"
	"github.com/jhoicas/stockcontrol-gateway/internal/application/usecase"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/pkg/jwt"
)

// Workspace casos de uso ligados a una sesión: comparten el cliente HTTP (tokens)
// y la caché de transacciones de esa sesión.
type Workspace struct {
	Session      *entity.Session
	Auth         *auth.AuthUseCase
	Items        *usecase.ItemUseCase
	Suppliers    *usecase.SupplierUseCase
	Users        *usecase.UserUseCase
	Stocks       *usecase.StockUseCase
	StockCosts   *usecase.StockCostUseCase
	Transactions *inventory.TransactionUseCase
	Reports      *report.ReportUseCase
}

// WorkspaceFactory construye el workspace de una sesión nueva.
type WorkspaceFactory func(s *entity.Session) *Workspace

// SessionRegistry sesiones activas del gateway indexadas por id (uuid).
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Workspace
	factory  WorkspaceFactory
	idle     time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// RegistryOption configura el registro.
type RegistryOption func(*SessionRegistry)

// WithRegistryClock reemplaza el reloj (tests).
func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *SessionRegistry) { r.now = now }
}

// WithRegistryLogger fija el logger.
func WithRegistryLogger(l zerolog.Logger) RegistryOption {
	return func(r *SessionRegistry) { r.log = l }
}

// NewSessionRegistry construye el registro. idle <= 0 desactiva la expiración por inactividad.
func NewSessionRegistry(factory WorkspaceFactory, idle time.Duration, opts ...RegistryOption) *SessionRegistry {
	r := &SessionRegistry{
		sessions: make(map[string]*Workspace),
		factory:  factory,
		idle:     idle,
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create abre una sesión vacía y devuelve su id.
func (r *SessionRegistry) Create() (string, *Workspace) {
	id := uuid.NewString()
	ws := r.factory(entity.NewSession(r.now()))

	r.mu.Lock()
	r.sessions[id] = ws
	r.mu.Unlock()

	r.log.Debug().Str("session_id", id).Msg("sesión creada")
	return id, ws
}

// Get devuelve el workspace y marca actividad. ok=false si no existe o expiró por inactividad.
func (r *SessionRegistry) Get(id string) (*Workspace, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	r.mu.RLock()
	ws, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.idleExpired(ws.Session, now) {
		r.Delete(id)
		return nil, false
	}
	ws.Session.Touch(now)
	return ws, true
}

// Delete elimina la sesión.
func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len número de sesiones registradas.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep elimina las sesiones inactivas y las que tienen el refresh token vencido.
// Devuelve cuántas se eliminaron.
func (r *SessionRegistry) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, ws := range r.sessions {
		refresh := ws.Session.RefreshToken()
		if r.idleExpired(ws.Session, now) || (refresh != "" && jwt.IsExpired(refresh, now)) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.log.Info().Int("removed", removed).Int("active", len(r.sessions)).Msg("sesiones expiradas eliminadas")
	}
	return removed
}

// Run ejecuta Sweep cada interval hasta que ctx se cancele.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *SessionRegistry) idleExpired(s *entity.Session, now time.Time) bool {
	return r.idle > 0 && now.Sub(s.LastSeen()) > r.idle
}
