package main

import (
	"os"
	"strconv"

	_ "fieldreport/api/swagger" // swagger docs
	"fieldreport/internal/database"
	"fieldreport/internal/handler"
	"fieldreport/internal/logging"
	"fieldreport/internal/middleware"
	"fieldreport/internal/refresher"
	"fieldreport/internal/repository"
	"fieldreport/internal/service"
	"fieldreport/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Field Report API
// @version         1.0
// @description     Credit report submission and multi-stage approval workflow API.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logging.New()

	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info("No configs/.env file found or error loading it")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "postgres")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Info("Connected to PostgreSQL successfully")

	if err := database.Seed(db); err != nil {
		log.Fatalf("Database seed failed: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	reportRepo := repository.NewReportRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	masterDataRepo := repository.NewMasterDataRepository(db)
	primaryDrafts := repository.NewGormDraftStore(db)
	backupDrafts := repository.NewMemoryDraftStore()

	userService := service.NewUserService(userRepo, refreshTokenRepo)
	draftService := service.NewDraftService(primaryDrafts, backupDrafts, log)
	reportService := service.NewReportService(reportRepo, auditRepo, txManager, draftService, wsHub, log)
	rankingService := service.NewRankingService(reportRepo, tierThresholdsFromEnv())
	auditService := service.NewAuditService(auditRepo)
	masterDataService := service.NewMasterDataService(masterDataRepo, auditRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	reportHandler := handler.NewReportHandler(reportService)
	draftHandler := handler.NewDraftHandler(draftService)
	rankingHandler := handler.NewRankingHandler(rankingService)
	auditHandler := handler.NewAuditHandler(auditService)
	masterDataHandler := handler.NewMasterDataHandler(masterDataService)

	// Periodic dashboard refresh broadcast
	dashRefresher := refresher.New(wsHub, log)
	if err := dashRefresher.Start(os.Getenv("REFRESH_SPEC")); err != nil {
		log.Fatalf("Refresher failed to start: %v", err)
	}
	defer dashRefresher.Stop()

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))
	draftHandler.RegisterRoutes(router.Group(""))
	rankingHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	masterDataHandler.RegisterRoutes(router.Group(""))

	port := envOr("PORT", "8080")

	log.Infof("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// tierThresholdsFromEnv allows tuning the leaderboard cutoffs per deployment.
func tierThresholdsFromEnv() service.TierThresholds {
	t := service.DefaultTierThresholds()
	if v, err := strconv.Atoi(os.Getenv("RANKING_TIER_DIAMOND")); err == nil && v > 0 {
		t.Diamond = v
	}
	if v, err := strconv.Atoi(os.Getenv("RANKING_TIER_PLATINUM")); err == nil && v > 0 {
		t.Platinum = v
	}
	if v, err := strconv.Atoi(os.Getenv("RANKING_TIER_GOLD")); err == nil && v > 0 {
		t.Gold = v
	}
	if v, err := strconv.Atoi(os.Getenv("RANKING_TIER_SILVER")); err == nil && v > 0 {
		t.Silver = v
	}
	return t
}
