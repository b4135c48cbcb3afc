package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	httpadapter "github.com/ireporter/ireporter/internal/adapter/http"
	"github.com/ireporter/ireporter/internal/adapter/http/middleware"
	"github.com/ireporter/ireporter/internal/adapter/persistence"
	"github.com/ireporter/ireporter/internal/config"
	"github.com/ireporter/ireporter/internal/service/jwt"
	"github.com/ireporter/ireporter/internal/service/logger"
	"github.com/ireporter/ireporter/internal/service/password"
	"github.com/ireporter/ireporter/internal/service/ratelimit"
	"github.com/ireporter/ireporter/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logConfig := logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "ireporter",
	}
	structuredLogger := logger.NewStructuredLogger(logConfig)
	structuredLogger.Info("application starting", map[string]interface{}{
		"env": cfg.Server.Environment,
	})

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxConnections)

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error("failed to ping database", err, nil)
		log.Fatalf("failed to ping database: %v", err)
	}
	structuredLogger.Info("database connection established", nil)

	limiter, err := ratelimit.NewService(ratelimit.Config{
		Enabled:  cfg.RateLimit.Enabled,
		RedisURL: cfg.RateLimit.RedisURL,
		Limit:    cfg.RateLimit.Limit,
		Window:   cfg.RateLimit.Window,
	}, logger.NewLogrusLogger(logConfig))
	if err != nil {
		structuredLogger.Error("failed to initialize rate limiter", err, nil)
		log.Fatalf("failed to initialize rate limiter: %v", err)
	}

	// Repositories
	recordRepo := persistence.NewPostgresRecordRepository(db)
	userRepo := persistence.NewPostgresUserRepository(db)
	commentRepo := persistence.NewPostgresCommentRepository(db)
	notificationRepo := persistence.NewPostgresNotificationRepository(db)

	// Services and use cases
	tokenService := jwt.NewService(cfg.Security.JWTSecret, cfg.Security.JWTExpiration)
	passwordService := password.NewBcryptService(cfg.Security.BcryptCost)
	authUseCase := usecase.NewAuthUseCase(userRepo, passwordService, tokenService, cfg.Security.JWTExpiration)
	recordUseCase := usecase.NewRecordUseCase(recordRepo, notificationRepo, structuredLogger)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, recordRepo)
	profileUseCase := usecase.NewProfileUseCase(userRepo)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo)

	// HTTP wiring
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	router := mux.NewRouter()

	httpadapter.NewAuthHandler(authUseCase, structuredLogger).RegisterRoutes(router)
	httpadapter.NewRecordHandler(recordUseCase, structuredLogger).RegisterRoutes(router, authMiddleware, limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	httpadapter.NewCommentHandler(commentUseCase, structuredLogger).RegisterRoutes(router, authMiddleware)
	httpadapter.NewProfileHandler(profileUseCase, notificationUseCase, structuredLogger).RegisterRoutes(router, authMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	handler := middleware.CorrelationID(router)
	handler = middleware.CORS(handler, cfg.Server.CORSOrigins)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		structuredLogger.Info("starting server", map[string]interface{}{
			"addr": cfg.Addr(),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error("server failed", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info("shutting down", nil)
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error("graceful shutdown failed", err, nil)
	}
}
