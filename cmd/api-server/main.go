package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Varun5711/taskboard/internal/auth"
	"github.com/Varun5711/taskboard/internal/config"
	"github.com/Varun5711/taskboard/internal/database"
	"github.com/Varun5711/taskboard/internal/handlers"
	"github.com/Varun5711/taskboard/internal/logger"
	"github.com/Varun5711/taskboard/internal/middleware"
	"github.com/Varun5711/taskboard/internal/service"
	"github.com/Varun5711/taskboard/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	log := logger.New("api-server")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		log.Warn("JWT_SECRET not set, using default (insecure for production)")
	}

	dbManager, err := database.NewDBManager(ctx, database.Config{
		PrimaryDSN:      cfg.Database.PrimaryDSN,
		ReplicaDSNs:     cfg.Database.ReplicaDSNs,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer dbManager.Close()

	if err := storage.Migrate(ctx, dbManager); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	authService := service.NewAuthService(storage.NewPostgresUserStorage(dbManager), jwtManager)
	taskService := service.NewTaskService(storage.NewPostgresTaskStorage(dbManager))

	router := newRouter(cfg, jwtManager, authService, taskService, log)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("Listening on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down api-server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}

	log.Info("api-server stopped")
}

func newRouter(
	cfg *config.Config,
	jwtManager *auth.JWTManager,
	authService *service.AuthService,
	taskService *service.TaskService,
	log *logger.Logger,
) *chi.Mux {
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	docsHandler := handlers.NewDocsHandler()
	authMw := middleware.NewAuthMiddleware(jwtManager)

	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", handlers.HealthCheck)
	r.Get("/docs", docsHandler.ServeUI)
	r.Get("/openapi.yaml", docsHandler.ServeSpec)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authMw.RequireAuth)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(authMw.RequireAuth)

			r.Post("/", taskHandler.Create)
			r.Get("/", taskHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetByID)
				r.Put("/", taskHandler.Update)
				r.Delete("/", taskHandler.Delete)
			})
		})
	})

	return r
}
