package app

import (
	"modmail/internal/app/block"
	"modmail/internal/app/command"
	"modmail/internal/app/health"
	"modmail/internal/app/relay"
	"modmail/internal/app/settings"
	"modmail/internal/app/thread"
	"modmail/internal/config"
	"modmail/internal/db"
	"modmail/internal/db/seeder"
	"modmail/internal/gateways/websocket"
	"modmail/internal/i18n"
	"modmail/internal/providers/kafka"
	"modmail/internal/providers/minio"
	"modmail/internal/providers/platform"
	"modmail/internal/providers/redis"
	"modmail/internal/router"
	"modmail/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	DB     *gorm.DB
}

func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	seed := seeder.NewSeeder(dbConn, logger)
	if err := seed.Seed(cfg.PrimaryGuildID); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)

	minioProvider, err := minio.NewMinioProvider(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize MinIO provider, attachments will not be mirrored", zap.Error(err))
		minioProvider = nil
	}

	translator, err := i18n.NewTranslator(cfg.DefaultLocale, logger)
	if err != nil {
		return nil, err
	}

	platformClient := platform.NewRESTClient(cfg, logger)
	eventBus := utils.NewEventBus()

	if len(cfg.KafkaBrokers) > 0 {
		auditProducer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaAuditTopic, logger)
		if err != nil {
			logger.Warn("Failed to initialize kafka producer, audit events disabled", zap.Error(err))
		} else {
			for _, event := range []string{block.EventUserBlocked, relay.EventMessageRelayed} {
				eventBus.Subscribe(event, func(e utils.Event) {
					auditProducer.Publish(e.Event, e.Data)
				})
			}
		}
	}

	threadRepo := thread.NewRepository(dbConn)
	blockRepo := block.NewRepository(dbConn)
	settingsRepo := settings.NewRepository(dbConn)

	threadService := thread.NewService(threadRepo)
	settingsService := settings.NewService(settingsRepo, redisProvider, logger)
	blockService := block.NewService(blockRepo, threadService, platformClient, redisProvider, eventBus, logger)

	var mirror relay.AttachmentMirror
	if minioProvider != nil {
		mirror = minioProvider
	}
	relayService := relay.NewService(threadService, settingsService, platformClient, mirror, eventBus, logger)

	hub := websocket.NewHub(logger, eventBus)
	go hub.Run()

	healthHandler := health.NewHandler(&utils.HealthChecker{
		DB:    dbConn,
		Redis: redisProvider.Client,
	})
	blockHandler := block.NewHandler(blockService, translator, logger)
	relayHandler := relay.NewHandler(relayService, translator, logger)

	registry := command.NewRegistry()
	registry.Register(blockHandler)
	registry.Register(relay.Commands(relayHandler)...)

	r := router.NewRouter(logger)

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterWebSocketRoutes(hub)
	r.RegisterBlockRoutes(blockHandler)
	r.RegisterRelayRoutes(relayHandler)
	r.RegisterCommandRoutes(registry)

	return &Application{
		Router: r,
		DB:     dbConn,
	}, nil
}
