package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	goredis "github.com/redis/go-redis/v9"

	"github.com/astral-cool/astral-web/internal/api"
	"github.com/astral-cool/astral-web/internal/config"
	"github.com/astral-cool/astral-web/internal/httpserver"
	"github.com/astral-cool/astral-web/internal/httpserver/deps"
	"github.com/astral-cool/astral-web/internal/httpserver/views"
	"github.com/astral-cool/astral-web/internal/logger"
	"github.com/astral-cool/astral-web/internal/redis"
	"github.com/astral-cool/astral-web/internal/scheduler"
	"github.com/astral-cool/astral-web/internal/session"
	"github.com/astral-cool/astral-web/internal/settings"
	"github.com/astral-cool/astral-web/internal/site"
	redisstore "github.com/astral-cool/astral-web/internal/store/redis"
	"github.com/astral-cool/astral-web/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	refresher   *scheduler.SessionRefresher
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	siteCfg, err := site.NewLoader(cfg.SiteFile).Load()
	if err != nil {
		loggerClient.Errorf("Failed to load site file: %v", err)
		os.Exit(1)
	}

	client, err := api.New(cfg.BackendURL, cfg.BackendTimeout)
	if err != nil {
		loggerClient.Errorf("Invalid backend URL: %v", err)
		os.Exit(1)
	}

	// Sessions and the refresh queue share Redis when configured, so every
	// replica sees the same sessions. Fail fast if it is unreachable.
	var (
		store       scs.Store
		queue       scheduler.Queue
		redisClient *goredis.Client
		redisStore  *redisstore.Store
	)
	if cfg.RedisEnabled() {
		redisClient, err = redis.Connect(context.Background(), redis.OptionsFromConfig(cfg), loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisStore = redisstore.NewStore(redisClient)
		store, queue = redisStore, redisStore
		loggerClient.Info("sessions stored in redis", logger.String("addr", cfg.RedisAddr))
	} else {
		store, queue = memstore.New(), scheduler.NewMemoryQueue()
		loggerClient.Warn("ASTRAL_REDIS_ADDR not set, sessions are kept in memory")
	}

	sessions := session.NewManager(store, cfg.SessionLifetime, cfg.CookieSecure)

	refreshTrigger := make(chan struct{}, 1)
	refresher := scheduler.NewSessionRefresher(
		queue,
		sessions,
		func(ctx context.Context, prev session.State) (session.State, error) {
			return session.Reload(ctx, client, prev, siteCfg.DefaultDomain)
		},
		loggerClient,
		cfg.SessionRefreshInterval,
		refreshTrigger,
	)

	pages, err := views.New()
	if err != nil {
		loggerClient.Errorf("Failed to parse templates: %v", err)
		os.Exit(1)
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		LoginLimit:     cfg.LoginBurst,
		LoginRefill:    cfg.LoginRefillPerMin,
		Site:           siteCfg,
		Backend:        client,
		Sessions:       sessions,
		Dispatcher:     settings.NewDispatcher(client, loggerClient),
		Refresher:      refresher,
		RefreshTrigger: refreshTrigger,
		RedisStore:     redisStore,
		Views:          pages,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		refresher:   refresher,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting astral-web %s", version.String())
	a.logger.Info("backend configured", logger.String("url", a.cfg.BackendURL))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.refresher.Start(ctx)
	a.logger.Info("session refresher started",
		logger.Duration("interval", a.cfg.SessionRefreshInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.refresher.Stop()
		return err
	}

	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ astral-web stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
