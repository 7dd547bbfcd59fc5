package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/payment-scheme-engine/internal/config"
	"github.com/anyulbade/payment-scheme-engine/internal/database"
	"github.com/anyulbade/payment-scheme-engine/internal/handler"
	"github.com/anyulbade/payment-scheme-engine/internal/middleware"
	"github.com/anyulbade/payment-scheme-engine/internal/repository"
	"github.com/anyulbade/payment-scheme-engine/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}
	if cfg.SeedOnBoot {
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool)
	router.GET("/health", healthHandler.Health)

	handler.SetupSwagger(router)
	setupAPIRoutes(router, pool)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(router *gin.Engine, pool *pgxpool.Pool) {
	schemeRepo := repository.NewSchemeRepository(pool)

	schemeService := service.NewSchemeService(schemeRepo)
	availabilityService := service.NewAvailabilityService(schemeRepo)

	schemeHandler := handler.NewSchemeHandler(schemeService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)

	api := router.Group("/api/v1")
	{
		api.POST("/schemes", schemeHandler.Create)
		api.GET("/schemes", schemeHandler.List)
		api.GET("/schemes/availability", availabilityHandler.Overview)
		api.GET("/schemes/:id", schemeHandler.Get)
		api.PUT("/schemes/:id", schemeHandler.Update)
		api.DELETE("/schemes/:id", schemeHandler.Delete)
		api.GET("/schemes/:id/availability", schemeHandler.Availability)
		api.POST("/schemes/:id/calculate-fees", schemeHandler.CalculateFees)
		api.POST("/schemes/:id/validate-compatibility", schemeHandler.ValidateCompatibility)
	}
}
