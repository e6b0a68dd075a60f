package app

import (
	"context"
	"fmt"
	"time"

	"github.com/mockuniversity/mocku-backend/internal/db"
	apphttp "github.com/mockuniversity/mocku-backend/internal/http"
	"github.com/mockuniversity/mocku-backend/internal/http/middleware"
	"github.com/mockuniversity/mocku-backend/internal/integration"
	"github.com/mockuniversity/mocku-backend/internal/observability"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/realtime"
	"github.com/mockuniversity/mocku-backend/internal/realtime/bus"
	"github.com/mockuniversity/mocku-backend/internal/services"
	"github.com/mockuniversity/mocku-backend/internal/store"
)

type App struct {
	log *logger.Logger
	cfg Config

	dbService   *db.DatabaseService
	records     store.RecordStore
	hub         *realtime.Hub
	bus         bus.Bus
	broadcaster services.Broadcaster

	mirror    *integration.Mirror
	messenger *integration.Messenger

	repos    appRepos
	services appServices
	handlers appHandlers
	authMW   *middleware.AuthMiddleware

	server  *apphttp.Server
	tracing *observability.Tracing
	cancel  context.CancelFunc
}

func New(log *logger.Logger, cfg Config) (*App, error) {
	a := &App{log: log.With("component", "App"), cfg: cfg}

	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	a.dbService = dbService

	if err := a.wireStore(log); err != nil {
		return nil, err
	}
	if err := a.wireRealtime(log); err != nil {
		return nil, err
	}

	a.wireRepos()
	if err := a.wireServices(); err != nil {
		return nil, fmt.Errorf("wire services: %w", err)
	}
	a.wireIntegration(log)
	a.wireMiddleware()
	a.wireHandlers()

	if cfg.TracingEnabled {
		tracing, err := observability.SetupTracing(log)
		if err != nil {
			return nil, fmt.Errorf("setup tracing: %w", err)
		}
		a.tracing = tracing
	}

	engine := apphttp.NewRouter(apphttp.RouterConfig{
		Log:            log,
		Mode:           cfg.Mode,
		PartnerOrigin:  cfg.PartnerOrigin,
		TracingEnabled: cfg.TracingEnabled,

		AuthMW: a.authMW,

		RecommendationHandler: a.handlers.recommendation,
		WebhookHandler:        a.handlers.webhook,
		AuthHandler:           a.handlers.auth,
		ApplicationHandler:    a.handlers.application,
		ContactHandler:        a.handlers.contact,
		ProgramHandler:        a.handlers.program,
		IntegrationHandler:    a.handlers.integration,
		RealtimeHandler:       a.handlers.realtime,
	})
	a.server = apphttp.NewServer(log, ":"+cfg.Port, engine)
	return a, nil
}

func (a *App) wireStore(log *logger.Logger) error {
	var records store.RecordStore
	switch a.cfg.StoreBackend {
	case "redis":
		redisStore, err := store.NewRedisStore(log)
		if err != nil {
			return fmt.Errorf("init redis store: %w", err)
		}
		records = redisStore
	case "gorm":
		records = store.NewGormStore(a.dbService.DB(), log)
	default:
		records = store.NewMemoryStore()
	}
	if a.cfg.DemoFixtures {
		records = store.NewDemoFixtures(records, log)
	}
	a.records = records
	a.log.Info("Record store wired", "backend", a.cfg.StoreBackend, "demo_fixtures", a.cfg.DemoFixtures)
	return nil
}

func (a *App) wireRealtime(log *logger.Logger) error {
	a.hub = realtime.NewHub(log)
	a.broadcaster = a.hub
	if !a.cfg.RedisBusEnabled {
		return nil
	}
	redisBus, err := bus.NewRedisBus(log)
	if err != nil {
		return fmt.Errorf("init redis bus: %w", err)
	}
	a.bus = redisBus
	a.broadcaster = &busBroadcaster{log: a.log, bus: redisBus}
	return nil
}

func (a *App) wireIntegration(log *logger.Logger) {
	a.mirror = integration.NewMirror()

	var embedder, opener integration.Poster
	if a.cfg.PartnerEmbedderURL != "" {
		embedder = integration.NewHTTPPoster(a.cfg.PartnerEmbedderURL)
	}
	if a.cfg.PartnerOpenerURL != "" {
		opener = integration.NewHTTPPoster(a.cfg.PartnerOpenerURL)
	}

	a.messenger = integration.NewMessenger(
		log,
		integration.Config{
			PartnerOrigin:  a.cfg.PartnerOrigin,
			UniversityID:   a.cfg.UniversityID,
			UniversityName: a.cfg.UniversityName,
		},
		a.mirror,
		a.services.recommendation,
		a.broadcaster,
		embedder,
		opener,
	)
}

// Start brings up background workers and the HTTP listener. It blocks
// until the listener stops.
func (a *App) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if err := a.services.auth.SeedDemoStudents(ctx); err != nil {
		return fmt.Errorf("seed demo students: %w", err)
	}

	if a.bus != nil {
		if err := a.bus.StartForwarder(ctx, a.hub.Broadcast); err != nil {
			return fmt.Errorf("start bus forwarder: %w", err)
		}
	}

	go a.cleanExpiredTokens(ctx)

	a.messenger.Initialize()
	return a.server.Start()
}

func (a *App) cleanExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.repos.studentToken.DeleteExpired(ctx, nil, time.Now()); err != nil {
				a.log.Warn("Expired token cleanup failed", "error", err)
			}
		}
	}
}

func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Warn("HTTP shutdown failed", "error", err)
	}
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			a.log.Warn("Bus close failed", "error", err)
		}
	}
	if closer, ok := a.records.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.log.Warn("Record store close failed", "error", err)
		}
	}
	if err := a.tracing.Shutdown(ctx); err != nil {
		a.log.Warn("Tracing shutdown failed", "error", err)
	}
}
