package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auralog/internal/config"
	"auralog/internal/database"
	"auralog/internal/handlers"
	"auralog/internal/jobs"
	"auralog/internal/logging"
	"auralog/internal/middleware"
	"auralog/internal/scoring"
	"auralog/internal/services"
	"auralog/pkg/auth"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting AuraLog Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Load configuration
	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s)", cfg.Port)

	// Initialize MongoDB
	if cfg.MongoURI == "" {
		log.Fatal("❌ MONGODB_URI environment variable is required")
	}

	log.Println("🔗 Connecting to MongoDB...")
	mongoDB, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close(context.Background())

	if err := mongoDB.Initialize(context.Background()); err != nil {
		log.Fatalf("❌ Failed to initialize MongoDB: %v", err)
	}
	log.Println("✅ MongoDB connected and indexes ensured")

	// Initialize Redis (optional - multi-instance locks + record events)
	var redisService *services.RedisService
	if cfg.RedisURL != "" {
		log.Println("🔗 Connecting to Redis...")
		redisService, err = services.NewRedisService(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (record events dispatch in-process)", err)
			redisService = nil
		}
	} else {
		log.Println("⚠️ REDIS_URL not set - record events dispatch in-process")
	}

	// Scoring thresholds (YAML, hot-reloaded)
	thresholds := config.NewThresholdsHolder()
	if err := thresholds.LoadFile(cfg.ThresholdsPath); err != nil {
		log.Fatalf("❌ Failed to load thresholds from %s: %v", cfg.ThresholdsPath, err)
	}
	go thresholds.Watch(cfg.ThresholdsPath)

	// Initialize Prometheus metrics
	metrics := services.InitMetrics()
	log.Println("✅ Prometheus metrics initialized")

	// Initialize services
	instanceID := uuid.New().String()
	pubsubService := services.NewPubSubService(redisService, instanceID)

	signalService := services.NewSignalService(mongoDB, metrics)
	userService := services.NewUserService(mongoDB)
	dailyService := services.NewDailyRecordService(mongoDB, metrics)

	var pushService *services.PushService
	if cfg.PushGatewayURL != "" {
		sender := services.NewHTTPPushSender(cfg.PushGatewayURL, cfg.PushAPIKey)
		pushService = services.NewPushService(sender, userService, metrics)
		log.Println("✅ Push service initialized")
	} else {
		log.Println("⚠️ PUSH_GATEWAY_URL not set - push notifications disabled")
	}

	mirrorService := services.NewMirrorService(
		mongoDB, signalService, dailyService, pubsubService,
		scoring.NewKeywordSentiment(), thresholds, metrics,
	)
	forecastService := services.NewForecastService(mongoDB, mirrorService, thresholds, metrics)
	patternService := services.NewPatternService(mongoDB, dailyService, mirrorService, pushService, thresholds, metrics)
	narrativeService := services.NewNarrativeService(mirrorService, forecastService)

	// Wire pattern detectors onto the record event bus and start it
	patternService.SubscribeTo(pubsubService)
	if err := pubsubService.Start(); err != nil {
		log.Fatalf("❌ Failed to start record event bus: %v", err)
	}

	// Register the pipeline jobs
	jobScheduler, err := jobs.NewJobScheduler(cfg.ScheduleTimezone, redisService, metrics)
	if err != nil {
		log.Fatalf("❌ Failed to create job scheduler: %v", err)
	}

	jobRegistrations := []struct {
		job  jobs.Job
		cron string
	}{
		{jobs.NewDailyAggregationJob(signalService, dailyService, userService, pubsubService, metrics), cfg.AggregationCron},
		{jobs.NewMirrorBuilderJob(mirrorService, userService, metrics), cfg.MirrorCron},
		{jobs.NewForecastJob(forecastService, userService, metrics), cfg.ForecastCron},
		{jobs.NewLifeEventScanJob(patternService, userService, metrics), cfg.LifeEventCron},
		{jobs.NewRetentionCleanupJob(signalService, cfg.RawRetentionDays), cfg.RetentionCron},
	}
	for _, reg := range jobRegistrations {
		if err := jobScheduler.Register(reg.job, reg.cron); err != nil {
			log.Fatalf("❌ Failed to register job: %v", err)
		}
	}
	jobScheduler.Start()

	// Initialize JWT auth (nil in dev mode enables the bypass)
	var jwtAuth *auth.LocalJWTAuth
	if cfg.JWTSecret != "" {
		jwtAuth, err = auth.NewLocalJWTAuth(cfg.JWTSecret, 0)
		if err != nil {
			log.Fatalf("❌ Failed to initialize JWT auth: %v", err)
		}
		log.Println("✅ JWT auth initialized")
	} else {
		log.Println("⚠️ JWT_SECRET not set - auth runs in development bypass mode")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AuraLog v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    5 * 1024 * 1024, // raw signal batches stay small
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("auralog")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	// CORS configuration with environment-based origins
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173,http://localhost:3000"
		log.Println("⚠️  ALLOWED_ORIGINS not set, using development defaults")
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: allowedOrigins != "*",
	}))

	// Rate limiting
	rateLimitConfig := middleware.LoadRateLimitConfig()
	app.Use("/api", middleware.GlobalAPIRateLimiter(rateLimitConfig))
	log.Printf("🛡️  [RATE-LIMIT] Global=%d/min, Ingest=%d/min", rateLimitConfig.GlobalAPIMax, rateLimitConfig.IngestMax)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(mongoDB, redisService)
	signalHandler := handlers.NewSignalHandler(signalService, userService)
	mirrorHandler := handlers.NewMirrorHandler(mirrorService)
	forecastHandler := handlers.NewForecastHandler(forecastService)
	insightsHandler := handlers.NewInsightsHandler(narrativeService)
	patternHandler := handlers.NewPatternHandler(patternService)
	deviceHandler := handlers.NewDeviceHandler(userService)
	jobsAdminHandler := handlers.NewJobsAdminHandler(jobScheduler)

	// Routes
	app.Get("/health", healthHandler.Handle)

	api := app.Group("/api", middleware.LocalAuthMiddleware(jwtAuth))

	api.Post("/signals", middleware.IngestRateLimiter(rateLimitConfig), signalHandler.Ingest)

	api.Get("/mirror/latest", mirrorHandler.Latest)
	api.Get("/mirror/history", mirrorHandler.History)
	api.Get("/forecast/latest", forecastHandler.Latest)
	api.Get("/insights/daily", insightsHandler.Daily)
	api.Get("/insights/visual", insightsHandler.Visual)
	api.Get("/patterns/recent", patternHandler.Recent)

	api.Post("/devices", deviceHandler.Register)
	api.Delete("/devices/:token", deviceHandler.Unregister)

	admin := api.Group("/admin", middleware.AdminMiddleware(cfg))
	admin.Get("/jobs", jobsAdminHandler.List)
	admin.Post("/jobs/:name/run", jobsAdminHandler.Run)

	log.Printf("🌐 Server starting on port %s", cfg.Port)
	log.Printf("📡 Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("🕐 Jobs: aggregation (%s), mirror (%s), forecast (%s), life events (%s), retention (%s)",
		cfg.AggregationCron, cfg.MirrorCron, cfg.ForecastCron, cfg.LifeEventCron, cfg.RetentionCron)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		if err := jobScheduler.Stop(); err != nil {
			log.Printf("⚠️ Error stopping job scheduler: %v", err)
		}

		pubsubService.Stop()

		if redisService != nil {
			if err := redisService.Close(); err != nil {
				log.Printf("⚠️ Error closing Redis: %v", err)
			}
		}

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
