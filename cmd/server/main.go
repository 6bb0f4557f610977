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
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/tender-pricing-engine/internal/config"
	"github.com/anyulbade/tender-pricing-engine/internal/database"
	"github.com/anyulbade/tender-pricing-engine/internal/handler"
	"github.com/anyulbade/tender-pricing-engine/internal/middleware"
	"github.com/anyulbade/tender-pricing-engine/internal/repository"
	"github.com/anyulbade/tender-pricing-engine/internal/service"
	"github.com/anyulbade/tender-pricing-engine/internal/tax"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

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

	setupAPIRoutes(router, pool, cfg)

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

func setupAPIRoutes(router *gin.Engine, pool *pgxpool.Pool, cfg *config.Config) {
	catalogRepo := repository.NewCatalogRepository(pool)
	discountRepo := repository.NewDiscountRepository(pool)
	planRepo := repository.NewPlanRepository(pool)

	taxProvider := tax.FlatRate{Rate: cfg.DefaultVATRate}

	catalogService := service.NewCatalogService(catalogRepo, discountRepo, planRepo, taxProvider)
	simulationService := service.NewSimulationService(discountRepo, planRepo, taxProvider)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	simulationHandler := handler.NewSimulationHandler(simulationService)

	api := router.Group("/api/v1")
	{
		api.GET("/simulator/masters", catalogHandler.GetMasters)
		api.GET("/simulator/discounts", catalogHandler.GetDiscounts)
		api.GET("/simulator/plans", catalogHandler.GetPlans)
		api.POST("/simulator/simulate", simulationHandler.Simulate)
	}
}
