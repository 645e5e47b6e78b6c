package main

import (
	"fmt"

	"github.com/amblelog/amble/backend/internal/config"
	"github.com/amblelog/amble/backend/internal/handlers"
	"github.com/amblelog/amble/backend/internal/logger"
	"github.com/amblelog/amble/backend/internal/middleware"
	"github.com/amblelog/amble/backend/internal/repository"
	"github.com/amblelog/amble/backend/internal/service"
	"github.com/amblelog/amble/backend/pkg/supabase"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var port string

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
	logger.SetDefault(log)

	log.Info("starting amble API server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	// Initialize Supabase client
	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	// Initialize repositories
	walkRepo := repository.NewWalkRepository(supabaseClient)
	aggRepo := repository.NewDailyAggregateRepository(supabaseClient)
	streakRepo := repository.NewStreakRepository(supabaseClient)
	profileRepo := repository.NewProfileRepository(supabaseClient)

	// Initialize services
	walkService := service.NewWalkService(walkRepo, aggRepo, streakRepo, profileRepo)
	historyService := service.NewHistoryService(walkRepo, aggRepo, streakRepo, profileRepo)

	// Initialize handlers
	walkHandler := handlers.NewWalkHandler(walkService)
	historyHandler := handlers.NewHistoryHandler(historyService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(middleware.Auth(supabaseClient))
	{
		// Walk routes
		protected.GET("/walks", walkHandler.GetWalks)
		protected.POST("/walks", walkHandler.CreateWalk)
		protected.GET("/walks/:id", walkHandler.GetWalk)
		protected.DELETE("/walks/:id", walkHandler.DeleteWalk)
		protected.POST("/walks/batch-delete", walkHandler.DeleteWalks)

		// History routes
		protected.GET("/history", historyHandler.GetHistory)
		protected.GET("/streak", historyHandler.GetStreak)
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
