package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	httpapi "github.com/bluebirdlabs/lyrictype/internal/web/http"
	"github.com/bluebirdlabs/lyrictype/internal/web/service"
	"github.com/bluebirdlabs/lyrictype/internal/web/session"
	"github.com/bluebirdlabs/lyrictype/internal/web/store"
	redisstore "github.com/bluebirdlabs/lyrictype/internal/web/store/drivers/redis"
	"github.com/bluebirdlabs/lyrictype/internal/web/store/drivers/sqlite"
	"github.com/bluebirdlabs/lyrictype/internal/web/view"
	"github.com/bluebirdlabs/lyrictype/pkg/cryptox"
	"github.com/bluebirdlabs/lyrictype/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the web app with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          store.Store
	sessions    store.Sessions
	redisClient *goredis.Client

	sessionManager *session.Manager
	remember       *session.Remember

	authService    *service.AuthService
	profileService *service.ProfileService
	themeService   *service.ThemeService
	housekeeping   *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "lyrictype-web",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if app.cfg.RememberSecret == "" {
		if app.cfg.Env != "dev" {
			return nil, fmt.Errorf("LT_REMEMBER_SECRET is required outside dev")
		}
		// Dev convenience: an ephemeral secret means remember-me cookies
		// stop working across restarts, which is fine locally.
		app.cfg.RememberSecret = cryptox.MustGenerateToken(cryptox.TokenSize256)
		app.logger.Warn("using ephemeral remember-me secret; set LT_REMEMBER_SECRET to persist")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeeping.Start()

	app.logger.Info("web service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully stops the HTTP server, housekeeping and stores.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down web service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeeping.Stop()

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("web service stopped")
	return nil
}

// initDatabase opens the SQLite store and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSessions selects the session backend. SQLite shares the main
// store; redis keeps sessions in a separate keyspace with native TTLs.
func (app *Application) initSessions() error {
	switch app.cfg.SessionBackend {
	case SessionBackendSQLite:
		app.sessions = app.db.Sessions()

	case SessionBackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			_ = client.Close()
			return fmt.Errorf("failed to connect to redis at %s: %w", app.cfg.RedisAddr, err)
		}
		app.redisClient = client
		app.sessions = redisstore.NewSessions(client, "lyrictype:sess")

	default:
		return fmt.Errorf("unknown session backend %q", app.cfg.SessionBackend)
	}

	app.logger.Info("session backend ready", "backend", app.cfg.SessionBackend)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.sessionManager = session.NewManager(app.sessions, app.cfg.CookieSecure)
	app.remember = session.NewRemember(app.cfg.RememberSecret, app.cfg.CookieSecure)

	app.authService = &service.AuthService{Store: app.db}
	app.profileService = &service.ProfileService{Store: app.db, Sessions: app.sessions}
	app.themeService = &service.ThemeService{Sessions: app.sessions}

	app.housekeeping = service.NewHousekeepingService(
		app.sessions,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP wires the router and HTTP server.
func (app *Application) initHTTP() error {
	renderer, err := view.NewHTML()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	app.router = httpapi.NewRouter(
		app.db,
		app.sessionManager,
		app.remember,
		renderer,
		app.cfg.StaticDir,
		app.logger,
	)
	app.router.AuthService = app.authService
	app.router.ProfileService = app.profileService
	app.router.ThemeService = app.themeService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
	return nil
}
