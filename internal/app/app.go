package app

import (
	"context"
	"net/http"

	"secret-santa-go/internal/config"
	"secret-santa-go/internal/db"
	drawdomain "secret-santa-go/internal/domain/draw"
	eventdomain "secret-santa-go/internal/domain/event"
	giftsdomain "secret-santa-go/internal/domain/gifts"
	participantdomain "secret-santa-go/internal/domain/participant"
	"secret-santa-go/internal/metrics"
	"secret-santa-go/internal/notify"
	"secret-santa-go/internal/repository/inmemory"
	drawrepo "secret-santa-go/internal/repository/postgres/draw"
	eventrepo "secret-santa-go/internal/repository/postgres/event"
	giftsrepo "secret-santa-go/internal/repository/postgres/gifts"
	participantrepo "secret-santa-go/internal/repository/postgres/participant"
	"secret-santa-go/internal/transport/httpserver"
	"secret-santa-go/internal/transport/httpserver/handler"
	"secret-santa-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg            config.Config
	httpServer     *http.Server
	db             *gorm.DB
	notifyShutdown notify.ShutdownFunc
	log            logger.Logger
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.New(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(ctx, dbConn, cfg.DB.Driver); err != nil {
		return nil, err
	}

	log.Info("app: initializing notifier", "driver", cfg.Notify.Driver)
	notifier, notifyShutdown, err := notify.New(cfg.Notify, log)
	if err != nil {
		return nil, err
	}

	m := metrics.New()

	participants := participantdomain.NewService(participantrepo.NewPostgres(dbConn), notifier, cfg.Draw.CodeTTL, log)
	gifts := giftsdomain.NewService(giftsrepo.NewPostgres(dbConn), inmemory.NewInMemoryGiftSnapshotCache(), cfg.Draw.SnapshotCacheTTL)
	eventRepo := eventrepo.NewPostgres(dbConn)
	events := eventdomain.NewService(eventRepo, participants, log)
	engine := drawdomain.NewEngine(
		drawrepo.NewPostgres(dbConn),
		eventRepo,
		participants,
		gifts,
		notifier,
		m,
		drawdomain.EngineOptions{ShuffleAttempts: cfg.Draw.ShuffleAttempts},
		log,
	)

	log.Info("app: initializing router")
	handlers := handler.New(participants, gifts, events, engine, log)
	router := httpserver.NewRouter(cfg, handlers, m)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:            cfg,
		httpServer:     srv,
		db:             dbConn,
		notifyShutdown: notifyShutdown,
		log:            log,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.notifyShutdown != nil {
		a.notifyShutdown()
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
