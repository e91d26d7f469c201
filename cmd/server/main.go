package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hashiroii/tiyin-server/internal/auth"
	"github.com/hashiroii/tiyin-server/internal/catalog"
	"github.com/hashiroii/tiyin-server/internal/config"
	"github.com/hashiroii/tiyin-server/internal/detect"
	"github.com/hashiroii/tiyin-server/internal/events"
	"github.com/hashiroii/tiyin-server/internal/history"
	"github.com/hashiroii/tiyin-server/internal/ingest"
	"github.com/hashiroii/tiyin-server/internal/logger"
	"github.com/hashiroii/tiyin-server/internal/notifications"
	"github.com/hashiroii/tiyin-server/internal/preferences"
	"github.com/hashiroii/tiyin-server/internal/reminders"
	"github.com/hashiroii/tiyin-server/internal/storage/pg"
	"github.com/hashiroii/tiyin-server/internal/subscription"
)

func main() {
	config.LoadConfig()

	log := logger.New(logger.FromConfig(config.AppConfig.LogLevel, config.AppConfig.LogFormat))

	gin.SetMode(config.AppConfig.GinMode)

	ctx := context.Background()

	// Firebase backs auth, the subscription mirror and push delivery.
	firebaseClient, err := auth.NewFirebaseClient(ctx, config.AppConfig.FirebaseProjectID, config.AppConfig.FirebaseCredJSON)
	if err != nil {
		log.Error("failed to initialize firebase client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer firebaseClient.Close()

	tokenValidator, err := newTokenValidator(config.AppConfig, log)
	if err != nil {
		log.Error("failed to initialize token validator", slog.String("error", err.Error()))
		os.Exit(1)
	}
	authMiddleware := auth.NewMiddleware(tokenValidator)

	// Detection history is optional; the server runs without Postgres.
	var db *pg.Database
	if config.AppConfig.HistoryEnabled {
		db, err = pg.InitDatabase(config.AppConfig.DatabaseURL)
		if err != nil {
			log.Error("failed to initialize database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
	}

	serviceCatalog, err := loadCatalog(log)
	if err != nil {
		log.Error("failed to load catalog overrides", slog.String("error", err.Error()))
		os.Exit(1)
	}

	publisher, err := events.NewPublisher(config.AppConfig.NatsURL, log)
	if err != nil {
		log.Error("failed to connect to nats", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer publisher.Close()

	// Services
	subscriptionStore := subscription.NewStore(firebaseClient.Firestore())
	syncer := subscription.NewSyncer(subscriptionStore, log)
	sessions := subscription.NewManager()
	subscriptionService := subscription.NewService(sessions, subscriptionStore, syncer, publisher, log)

	preferencesService := preferences.NewService(preferences.NewStore(firebaseClient.Firestore()), log)

	var historyStore *history.Store
	if db != nil {
		historyStore = history.NewStore(db.DB)
	}
	historyService := history.NewService(historyStore, log)

	classifier := detect.NewClassifier(serviceCatalog, nil)
	ingestService := ingest.NewService(classifier, subscriptionService, preferencesService, historyService, log)

	pushService := notifications.NewService(firebaseClient.Messaging(), firebaseClient.Firestore(), log, config.AppConfig.PushNotificationsEnabled)

	var reminderScheduler *reminders.Scheduler
	if config.AppConfig.RemindersEnabled {
		reminderScheduler = reminders.NewScheduler(sessions, preferencesService, pushService, log)
		if err := reminderScheduler.Start(); err != nil {
			log.Error("failed to start reminder scheduler", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Handlers
	ingestHandler := ingest.NewHandler(ingestService)
	subscriptionHandler := subscription.NewHandler(subscriptionService, serviceCatalog)
	preferencesHandler := preferences.NewHandler(preferencesService)
	historyHandler := history.NewHandler(historyService)
	catalogHandler := catalog.NewHandler(serviceCatalog)

	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", config.AppConfig.CORSAllowedOrigins)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Unauthenticated endpoints
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// All API routes require auth
	api := router.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())
	{
		api.POST("/notifications", ingestHandler.Ingest)

		subscriptions := api.Group("/subscriptions")
		{
			subscriptions.GET("", subscriptionHandler.List)
			subscriptions.POST("", subscriptionHandler.Create)
			subscriptions.GET("/summary", subscriptionHandler.Summary)
			subscriptions.POST("/refresh", subscriptionHandler.Refresh)
			subscriptions.PUT("/:id", subscriptionHandler.Update)
			subscriptions.DELETE("/:id", subscriptionHandler.Delete)
		}

		api.GET("/services/search", catalogHandler.Search)

		api.GET("/preferences", preferencesHandler.Get)
		api.PATCH("/preferences", preferencesHandler.Patch)

		api.GET("/history", historyHandler.List)
	}

	port := ":" + config.AppConfig.Port
	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", slog.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	if reminderScheduler != nil {
		reminderScheduler.Stop()
	}

	// Drain pending subscription syncs before closing the Firestore client.
	syncer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(config.AppConfig.ServerShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server exited")
}

func loadCatalog(log *logger.Logger) (*catalog.Catalog, error) {
	if config.AppConfig.CatalogOverridesPath == "" {
		return catalog.New(), nil
	}

	overrides, err := catalog.LoadOverrides(config.AppConfig.CatalogOverridesPath)
	if err != nil {
		return nil, err
	}
	log.Info("catalog overrides loaded",
		slog.String("path", config.AppConfig.CatalogOverridesPath),
		slog.Int("services", len(overrides)))
	return catalog.New(overrides...), nil
}

func newTokenValidator(cfg *config.Config, log *logger.Logger) (auth.TokenValidator, error) {
	switch cfg.ValidatorType {
	case "firebase":
		if cfg.FirebaseProjectID == "" {
			return nil, errors.New("firebase project ID is required")
		}
		log.Info("creating firebase token validator", slog.String("project_id", cfg.FirebaseProjectID))
		return auth.NewFirebaseTokenValidator(context.Background(), cfg.FirebaseCredJSON)

	case "jwk":
		log.Info("creating jwt token validator", slog.String("jwks_url", cfg.JWTJWKSURL))
		return auth.NewJWTTokenValidator(cfg.JWTJWKSURL)

	default:
		return nil, errors.New("validator type must be either 'firebase' or 'jwk'")
	}
}
