package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poojaseva/config"
	"poojaseva/cron"
	"poojaseva/database"
	bookingRepo "poojaseva/database/repository/booking"
	catalogueRepo "poojaseva/database/repository/catalogue"
	providerRepo "poojaseva/database/repository/provider"
	userRepoPkg "poojaseva/database/repository/user"
	"poojaseva/handlers"
	"poojaseva/middleware"
	"poojaseva/routes"
	"poojaseva/services/booking"
	"poojaseva/services/functions"
	"poojaseva/services/intelligence"
	"poojaseva/services/matching"
	"poojaseva/services/notification"
	"poojaseva/services/selection"
	"poojaseva/services/storage"
	"poojaseva/services/user"
	"poojaseva/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	database.InitDB()
	utils.InitRedis()
	if err := utils.FirebaseInit(rootCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to initialize firebase: %v", err)
	}

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	catRepo := catalogueRepo.NewMongoCatalogueRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo, Logger: logger}

	matchingService := &matching.DefaultMatchingService{
		Providers: provRepo,
		Poojas:    catRepo,
		Cache:     matching.NewRedisDirectoryCache(utils.GetCacheClient(), config.AppConfig.DirectoryCacheTTL),
		Policy:    matching.EligibilityPolicy{CatchAll: config.AppConfig.EligibilityCatchAll},
		Logger:    logger,
	}

	notificationService := &notification.DefaultNotificationService{Logger: logger}
	if utils.FCMClient != nil {
		notificationService.Sender = utils.FCMClient
	}

	queueClient := asynq.NewClient(cron.RedisOpt())
	defer queueClient.Close()

	bookingService := &booking.DefaultBookingService{
		Repo:          bookRepo,
		Poojas:        catRepo,
		Providers:     provRepo,
		Matching:      matchingService,
		Lists:         booking.NewRedisListCache(utils.GetCacheClient(), config.AppConfig.DirectoryCacheTTL),
		Queue:         cron.NewAssignmentQueue(queueClient, config.AppConfig.AutoAssignRetries),
		Notifications: notificationService,
		Logger:        logger,
	}

	selectionService := &selection.DefaultSelectionService{
		Store:  selection.NewRedisStore(utils.GetSessionClient(), config.AppConfig.SelectionTTL),
		Logger: logger,
	}

	availabilityService := &functions.RemoteAvailabilityService{
		Functions: functions.NewClient(config.AppConfig.FunctionsBaseURL, config.AppConfig.FunctionsAPIKey, config.AppConfig.FunctionsTimeout),
	}

	itineraryService := &intelligence.DefaultItineraryService{Temples: catRepo, Logger: logger}
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := intelligence.NewGeminiClient(rootCtx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize gemini: %v", err)
		}
		defer gemini.Close()
		itineraryService.Generator = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set; itinerary planning disabled")
	}

	mediaService := &storage.MediaService{Providers: provRepo, Logger: logger}
	if cld, err := storage.NewCloudinaryStorage(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	); err != nil {
		logger.Warn("uploads disabled", zap.Error(err))
	} else {
		mediaService.Uploader = cld
	}

	// background auto-assign worker.
	worker := cron.NewWorker(bookingService, logger)
	if err := worker.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start assignment worker: %v", err)
	}

	utils.StartHealthMonitor(rootCtx, 30*time.Second, map[string]*redis.Client{
		"cache":   utils.GetCacheClient(),
		"session": utils.GetSessionClient(),
	}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := &handlers.HandlerBundle{
		Auth:       middleware.JWTAuthMiddleware(userService),
		Users:      handlers.NewUserHandler(userService),
		Catalogue:  handlers.NewCatalogueHandler(catRepo),
		Providers:  handlers.NewProviderHandler(matchingService, availabilityService, bookingService),
		Selections: handlers.NewSelectionHandler(selectionService),
		Bookings:   handlers.NewBookingHandler(bookingService, selectionService),
		AI:         handlers.NewAIHandler(itineraryService),
		Storage:    handlers.NewStorageHandler(mediaService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	stop()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
