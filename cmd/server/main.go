package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contacts_api/internal/api"
	"contacts_api/internal/app/service"
	"contacts_api/internal/common/security"
	"contacts_api/internal/domain/repository"
	"contacts_api/internal/platform/cache"
	"contacts_api/internal/platform/config"
	"contacts_api/internal/platform/database"
	"contacts_api/internal/platform/logger"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New(cfg.AppEnv)
	defer log.Sync()
	log.Info("configuration loaded", zap.String("env", cfg.AppEnv))

	// 3. Initialize Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()
	log.Info("database connected")

	// 4. Initialize Redis
	rdb, err := cache.NewClient(cfg)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer rdb.Close()
	log.Info("redis connected")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	contactRepo := repository.NewPgContactRepository(db)

	// 6. Initialize Services
	tokens := security.NewTokenService(cfg.JWTSecret, cfg.JWTExp)
	authService := service.NewAuthService(userRepo, tokens, cfg.BcryptCost)
	contactCache := cache.NewContactCache(rdb, cfg.ContactCacheTTL)
	contactService := service.NewContactService(contactRepo, contactCache)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(cfg, log, tokens, authService, contactService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("server starting", zap.String("port", cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not listen", zap.String("port", cfg.APIPort), zap.Error(err))
		}
	}()

	<-stop // Wait for interrupt signal

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown failed", zap.Error(err))
	}

	log.Info("server stopped gracefully")
}
