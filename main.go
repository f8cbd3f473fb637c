package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"karigar/config"
	"karigar/cron"
	"karigar/database"
	bookingRepo "karigar/database/repository/booking"
	"karigar/database/repository/memstore"
	providerRepo "karigar/database/repository/provider"
	reviewRepo "karigar/database/repository/review"
	serviceRepo "karigar/database/repository/service"
	userRepo "karigar/database/repository/user"
	"karigar/handlers"
	"karigar/middleware"
	"karigar/monitoring"
	"karigar/routes"
	"karigar/services/booking"
	"karigar/services/catalog"
	"karigar/services/provider"
	"karigar/services/review"
	"karigar/services/tasks"
	"karigar/services/user"
	"karigar/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type repositories struct {
	bookings  bookingRepo.BookingRepository
	reviews   reviewRepo.ReviewRepository
	providers providerRepo.ProviderRepository
	users     userRepo.UserRepository
	services  serviceRepo.ServiceRepository
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics := monitoring.Init()

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// repositories.
	var repos repositories
	var queue tasks.Enqueuer
	var worker *cron.Worker
	var asynqClient *asynq.Client

	if config.UsesMemoryStore() {
		logger.Warn("main: using in-memory storage, data is lost on restart")
		store := memstore.New()
		repos = repositories{
			bookings:  store.Bookings(),
			reviews:   store.Reviews(),
			providers: store.Providers(),
			users:     store.Users(),
			services:  store.Services(),
		}
	} else {
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: database unavailable", zap.Error(err))
		}
		utils.InitCache()
		db := database.Database()
		repos = repositories{
			bookings:  bookingRepo.NewMongoBookingRepo(db),
			reviews:   reviewRepo.NewMongoReviewRepo(db),
			providers: providerRepo.NewMongoProviderRepo(db),
			users:     userRepo.NewMongoUserRepo(db),
			services:  serviceRepo.NewMongoServiceRepo(db),
		}
		asynqClient = asynq.NewClient(cron.RedisQueueOpt())
		queue = asynqClient
		utils.StartHealthMonitor(rootCtx, utils.GetCacheClient(), database.MongoClient, 60*time.Second)
	}

	// services.
	directoryCache := provider.NewDirectoryCache(utils.GetCacheClient(), config.AppConfig.DirectoryCacheTTL, metrics)
	aggregator := &review.RatingAggregator{
		Reviews:   repos.reviews,
		Providers: repos.providers,
		Directory: directoryCache,
	}
	bookingService := booking.NewDefaultBookingService(repos.bookings, repos.providers, metrics)
	reviewService := &review.DefaultReviewService{
		Reviews:    repos.reviews,
		Bookings:   repos.bookings,
		Providers:  repos.providers,
		Aggregator: aggregator,
		Queue:      queue,
		Metrics:    metrics,
	}
	providerService := provider.NewDefaultProviderService(repos.providers, directoryCache)
	catalogService := catalog.NewDefaultCatalogService(repos.services, repos.users)
	userService := &user.DefaultUserService{
		Repo:     repos.users,
		TokenTTL: config.AppConfig.TokenTTL,
	}

	if !config.UsesMemoryStore() {
		w, err := cron.StartWorker(aggregator)
		if err != nil {
			logger.Fatal("main: failed to start rating worker", zap.Error(err))
		}
		worker = w
	}

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewAuthHandler(userService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewProviderHandler(providerService),
		handlers.NewServiceHandler(catalogService),
		handlers.HealthHandler(config.UsesMemoryStore()),
		monitoring.Handler(),
	)

	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(metrics.Middleware())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, metrics))
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	stopBackground()
	if worker != nil {
		worker.Stop()
	}
	if asynqClient != nil {
		_ = asynqClient.Close()
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Error("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
