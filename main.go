package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"mma-stats-system/config"
	"mma-stats-system/handlers"
	"mma-stats-system/middleware"
	"mma-stats-system/models"
	"mma-stats-system/repository"
	"mma-stats-system/services"
	"mma-stats-system/utils"
	"mma-stats-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.MustLoad()

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	log.Logger = log.With().Timestamp().Logger()

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // dataset archives
		// any unhandled failure still leaves a well-formed JSON envelope
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
			return c.Status(code).JSON(fiber.Map{"error": "internal server error"})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())

	origins := make([]string, 0)
	for _, origin := range strings.Split(cfg.AllowedOrigins, ",") {
		origins = append(origins, strings.TrimSpace(origin))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-Service-Token",
	}))

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(
		&models.Fighter{},
		&models.Division{},
		&models.RankingEntry{},
		&models.Event{},
		&models.Fight{},
		&models.FightOdds{},
		&models.AnalyticsSnapshot{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	if err := utils.InitMediaStore(utils.MediaConfig{
		AccountID:       cfg.S3AccountID,
		AccessKeyID:     cfg.S3AccessKeyID,
		AccessKeySecret: cfg.S3AccessKeySecret,
		Bucket:          cfg.S3Bucket,
		CDNBaseURL:      cfg.CDNBaseURL,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize media store")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		log.Info().Str("addr", cfg.RedisAddr).Msg("answer cache enabled")
	}

	store := repository.NewGormStore(db)

	queryService := services.NewQueryService(store, services.NewAnswerCache(rdb, cfg.AnswerCacheTTL))
	wordleService := services.NewWordleService(store.Fighters, cfg.PuzzleLocation())
	fighterService := services.NewFighterService(db, store.Fighters)
	eventService := services.NewEventService(store.Events)
	rankingService := services.NewRankingService(store.Rankings)
	analyticsService := services.NewAnalyticsService(db, store)
	importService := services.NewImportService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RankingsServiceURL != "" {
		rankingsWorker := workers.NewRankingsSyncWorker(db, cfg.RankingsServiceURL, cfg.ServiceToken, cfg.SyncInterval)
		rankingsWorker.Start(ctx)
	} else {
		log.Warn().Msg("RANKINGS_SERVICE_URL not set, rankings sync disabled")
	}

	if cfg.OddsServiceURL != "" {
		oddsClient := workers.NewOddsSyncClient(db, cfg.OddsServiceURL, cfg.ServiceToken)
		go workers.PollOdds(ctx, oddsClient, cfg.SyncInterval)
	} else {
		log.Warn().Msg("ODDS_SERVICE_URL not set, odds sync disabled")
	}

	if cfg.EnableAnalyticsJob {
		analyticsService.StartAggregationScheduler(cfg.AnalyticsInterval)
	}

	handlers.SetupQueryRoutes(app, queryService)
	handlers.SetupWordleRoutes(app, wordleService)
	handlers.SetupStatsRoutes(app, fighterService, eventService, rankingService, analyticsService, importService, cfg.ServiceToken)

	if cfg.EnableMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("server error")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("MMA stats service running")

	<-ctx.Done()
	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
