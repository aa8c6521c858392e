package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/waypartner/adminpanel/internal/audit"
	"github.com/waypartner/adminpanel/internal/auth"
	"github.com/waypartner/adminpanel/internal/backend"
	"github.com/waypartner/adminpanel/internal/config"
	"github.com/waypartner/adminpanel/internal/gate"
	"github.com/waypartner/adminpanel/internal/model"
	"github.com/waypartner/adminpanel/internal/notify"
	"github.com/waypartner/adminpanel/internal/store"
	"github.com/waypartner/adminpanel/internal/store/migrations"
)

type App struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	sessions store.SessionStore
	gate     *gate.Gate
	center   *notify.Center
	monitor  *backend.Monitor
}

func (app *App) Close() {
	if app.db != nil {
		app.db.Close()
	}
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)

	ctx := context.Background()

	var (
		db       *sql.DB
		sessions store.SessionStore
	)
	if cfg.SessionDBPath != "" {
		db, err = openDB(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open session database: %w", err)
		}
		sessions = store.NewSQLiteStore(db)
	} else {
		logger.Warn("no session database configured, sessions will not survive restarts")
		sessions = store.NewMemoryStore()
	}

	allowlist := auth.NewAllowlist()
	allowlist.Add(cfg.AdminPhone, "Admin User", model.RoleAdmin)
	allowlist.Add(cfg.SuperAdminPhone, "Super Admin", model.RoleSuperAdmin)

	g, err := gate.New(gate.Config{
		Allowlist:  allowlist,
		Sessions:   sessions,
		Logger:     logger,
		Audit:      audit.NewLogger(cfg.AuditLogPath),
		LoginDelay: cfg.LoginDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("init auth gate: %w", err)
	}
	g.OnSessionChanged(func(sess model.Session) {
		if sess.LoggedIn {
			logger.Debug("session changed", "identity", sess.Identity, "role", sess.Role)
			return
		}
		logger.Debug("session cleared")
	})

	monitor := backend.NewMonitor(backend.Config{
		URL:         cfg.SupabaseURL,
		AnonKey:     cfg.SupabaseAnonKey,
		DatabaseURL: cfg.SupabaseDBURL,
	}, logger)
	monitor.Start(ctx)

	// Restore a prior admin session before serving; a broken store just
	// means starting unauthenticated.
	g.Hydrate(ctx)

	return &App{
		config:   cfg,
		logger:   logger,
		db:       db,
		sessions: sessions,
		gate:     g,
		center:   notify.NewCenter(notify.Seed()),
		monitor:  monitor,
	}, nil
}

func (app *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	g.Go(func() error {
		app.logger.Info("starting admin panel", "addr", srv.Addr, "env", app.config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		app.logger.Info("shutting down admin panel")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	app.logger.Info("stopped admin panel")
	return nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite", cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := runMigrations(db); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// One writer at a time to avoid SQLITE_BUSY under concurrent requests
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}

	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return err
	}

	return m.Up()
}

func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	slog.SetDefault(logger)
	return logger
}
