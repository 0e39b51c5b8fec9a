package main

import (
	"flag"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Check for migrate command
	migrateCmd := flag.Bool("migrate", false, "Run database migration and seed data")
	flag.Parse()

	initLogger()

	if *migrateCmd {
		if err := setupDatabase(); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
		logger.Info().Msg("migration completed successfully")
		os.Exit(0)
	}

	// Initialize database
	if err := initDB(); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	// Initialize Redis
	if err := initRedis(); err != nil {
		logger.Warn().Err(err).Msg("failed to initialize redis, continuing without cache")
		redisClient = nil
	}

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	r.GET("/health", healthCheck)
	r.GET("/api/transactions", listTransactions)
	r.POST("/api/transactions", addTransactions)
	r.PATCH("/api/transactions/:id", updateTransaction)
	r.DELETE("/api/transactions/:id", deleteTransaction)
	r.DELETE("/api/transactions", clearAllTransactions)
	r.POST("/api/import/csv/preview", previewCSV)
	r.POST("/api/import/csv", importCSV)
	r.POST("/api/import/pdf", importPDF)
	r.GET("/api/categories", listCategories)
	r.GET("/api/summary", getSummary)
	r.GET("/api/aggregate", getAggregate)
	r.GET("/api/reconciliation", getReconciliation)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("server starting")
	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
