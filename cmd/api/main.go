package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"mikkoo/internal/app"
	"mikkoo/internal/config"
	"mikkoo/internal/database"
	apphttp "mikkoo/internal/http"
	"mikkoo/internal/http/handlers"
	"mikkoo/internal/http/metrics"
	httpmw "mikkoo/internal/http/middleware"
	"mikkoo/internal/http/response"
	"mikkoo/internal/integration/notify"
	"mikkoo/internal/observability"
	"mikkoo/internal/repository/postgres"
	"mikkoo/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	store := postgres.NewStore(db)
	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	notifier := notify.NewClient(cfg.NotifierBaseURL, cfg.NotifierKey, &http.Client{Timeout: 5 * time.Second})

	postingService := app.NewPostingService(store)
	applicationService := app.NewApplicationService(store, notifier, logger, cfg.ApplicationTTL, cfg.BookingPrefix)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = httpmw.NewRedisLimiter(redisClient)
	}

	postingHandler := handlers.NewPostingHandler(postingService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, limiter)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		PostingHandler:     postingHandler,
		ApplicationHandler: applicationHandler,
		MetricsHandler:     metrics.NewHandler(collector),
		AuthMiddleware:     middleware,
		Metrics:            collector,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started", "addr", ":"+cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
