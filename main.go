package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trailmate/config"
	"trailmate/cron"
	"trailmate/database"
	"trailmate/database/repository"
	firestoreRepo "trailmate/database/repository/firestore"
	memoryRepo "trailmate/database/repository/memory"
	mongoRepo "trailmate/database/repository/mongo"
	"trailmate/handlers"
	"trailmate/middleware"
	"trailmate/routes"
	"trailmate/services/favorites"
	"trailmate/services/geocode"
	ai "trailmate/services/intelligence"
	"trailmate/services/notification"
	"trailmate/services/tasks"
	"trailmate/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	utils.InitRedis()
	if config.FirebaseRequired() {
		if err := utils.FirebaseInit(ctx); err != nil {
			logger.Sugar().Fatalf("main: failed to initialize firebase: %v", err)
		}
	}

	store := openStore(ctx, logger)

	// authentication.
	var verifier middleware.TokenVerifier
	if config.AppConfig.AuthMode == "jwt" {
		verifier = utils.NewJWTTokenVerifier(config.AppConfig.JWTSecret)
	} else {
		verifier = utils.NewFirebaseTokenVerifier(utils.AuthClient)
	}

	// booking follow-ups: confirmation push and reminder tasks.
	notifier := &notification.BookingNotifier{
		Lead:   config.AppConfig.ReminderLead,
		Zone:   time.Local,
		Logger: logger,
	}
	var pushSvc notification.NotificationService
	if config.AppConfig.PushEnabled && utils.FCMClient != nil {
		svc, err := notification.NewDefaultNotificationService(store.Profiles, utils.FCMClient, logger)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		pushSvc = svc
		notifier.Push = svc
	}

	var reminderWorker *cron.ReminderWorker
	if config.AppConfig.RemindersEnabled && pushSvc != nil {
		redisOpts := asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}
		queue := asynq.NewClient(redisOpts)
		defer queue.Close()
		notifier.Reminders = tasks.NewScheduler(queue)

		reminderWorker = cron.NewReminderWorker(redisOpts, pushSvc, logger)
		reminderWorker.Start()
	}

	// conversation manager.
	places := geocode.NewClient(config.AppConfig.GeocodeBaseURL, config.AppConfig.GeocodeRPS, utils.GetCacheClient(), logger)
	loader := &ai.SnapshotLoader{
		Store:            store,
		Places:           places,
		CredentialSecret: config.AppConfig.CredentialSecret,
		Logger:           logger,
	}
	transcripts := ai.NewTranscriptStore(config.AppConfig.StorageBackend, utils.GetChatCacheClient(), config.AppConfig.SessionTTL)
	sessions := ai.NewSessionManager(loader, transcripts, config.AppConfig.SessionTTL, logger)
	if config.AppConfig.SessionTTL > 0 {
		go sessions.RunJanitor(ctx, time.Minute)
	}

	gemini := ai.NewGeminiClient(config.AppConfig.GeminiModel)
	defer gemini.Close()

	orchestrator := &ai.Orchestrator{
		Assembler: ai.ContextAssembler{HistoryWindow: config.AppConfig.HistoryWindow},
		Generator: gemini,
		Executor: &ai.BookingExecutor{
			Bookings: store.Bookings,
			Capacity: config.AppConfig.MaxParticipants,
			Notifier: notifier,
			Logger:   logger,
		},
		Transcripts:        transcripts,
		Logger:             logger,
		FallbackCredential: config.AppConfig.GeminiAPIKey,
		Timeout:            config.AppConfig.GenerationTimeout,
	}

	handlerBundle := &handlers.HandlerBundle{
		Chat:      handlers.NewChatHandler(sessions, orchestrator),
		Favorites: handlers.NewFavoritesHandler(favorites.NewService(utils.GetCacheClient(), logger)),
		Profile:   handlers.NewProfileHandler(store.Profiles, config.AppConfig.CredentialSecret),
	}

	utils.StartHealthMonitor(ctx, []*redis.Client{utils.GetCacheClient(), utils.GetChatCacheClient()}, store.Ping)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle, middleware.UserAuth(verifier, utils.GetCacheClient()))

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if store.Close != nil {
		if err := store.Close(shutdownCtx); err != nil {
			logger.Warn("main: store close failed", zap.Error(err))
		}
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// openStore connects the configured document store backend.
func openStore(ctx context.Context, logger *zap.Logger) repository.Store {
	switch config.AppConfig.StorageBackend {
	case "firestore":
		if utils.FirestoreClient == nil {
			logger.Sugar().Fatal("main: firestore backend selected but client is not initialized")
		}
		return firestoreRepo.NewStore(utils.FirestoreClient)
	case "memory":
		logger.Warn("main: using in-memory store, data is lost on restart")
		return memoryRepo.NewStore().Repositories()
	default:
		if err := database.InitDB(ctx); err != nil {
			logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
		}
		return mongoRepo.NewStore(database.Database(), logger)
	}
}
