// Package backend probes the external Supabase collaborator once at
// startup. The only contract the core consumes is "reachable or not": an
// unreachable backend downgrades the panel to demo mode, it never blocks
// login.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Status string

const (
	StatusChecking  Status = "checking"
	StatusConnected Status = "connected"
	StatusError     Status = "error"
)

type Config struct {
	// URL is the Supabase project URL; AnonKey authenticates the REST
	// probe. Both empty means demo mode: no probe is attempted.
	URL     string
	AnonKey string
	// DatabaseURL, when set, is probed with a direct Postgres ping
	// instead of the REST endpoint (Supabase is hosted Postgres).
	DatabaseURL string
}

// Monitor runs the reachability probe in the background and exposes the
// latest result. Fire-and-forget: callers read Status whenever they render.
type Monitor struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger

	mu     sync.RWMutex
	status Status
	detail string
}

func NewMonitor(cfg Config, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
		status: StatusChecking,
	}
}

// Demo reports whether no backend credentials are configured at all.
func (m *Monitor) Demo() bool {
	return m.cfg.URL == "" && m.cfg.DatabaseURL == ""
}

// Status returns the latest probe outcome plus its diagnostic message.
func (m *Monitor) Status() (Status, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status, m.detail
}

// Start launches the one-shot probe. It returns immediately; a slow or
// failed probe leaves the panel in demo/offline display mode.
func (m *Monitor) Start(ctx context.Context) {
	if m.Demo() {
		m.set(StatusError, "demo mode - no credentials")
		m.logger.Info("backend probe skipped, running in demo mode")
		return
	}
	go func() {
		if err := m.probe(ctx); err != nil {
			m.set(StatusError, err.Error())
			m.logger.Warn("backend unreachable, serving demo data", "err", err)
			return
		}
		m.set(StatusConnected, "")
		m.logger.Info("backend reachable")
	}()
}

func (m *Monitor) probe(ctx context.Context) error {
	if m.cfg.DatabaseURL != "" {
		return m.probePostgres(ctx)
	}
	return m.probeREST(ctx)
}

func (m *Monitor) probeREST(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.cfg.URL+"/rest/v1/", nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}
	req.Header.Set("apikey", m.cfg.AnonKey)
	req.Header.Set("Authorization", "Bearer "+m.cfg.AnonKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("probe backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("probe backend: HTTP %d", resp.StatusCode)
	}
	return nil
}

func (m *Monitor) probePostgres(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, m.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect backend database: %w", err)
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("ping backend database: %w", err)
	}
	return nil
}

func (m *Monitor) set(status Status, detail string) {
	m.mu.Lock()
	m.status = status
	m.detail = detail
	m.mu.Unlock()
}
