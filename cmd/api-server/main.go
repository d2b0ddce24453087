package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"brickhub/database"
	"brickhub/internal/config"
	"brickhub/internal/http-api/handler"
	"brickhub/internal/http-api/middleware"
	"brickhub/internal/http-api/repository"
	"brickhub/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	ledgerRepo := repository.NewMinifigLedgerRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	catalogRepo := repository.NewCatalogRepository(db)
	if rdb, err := repository.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
		// The cache is an optimization, the API works without it
		logger.Warn("redis unavailable, catalog cache disabled", "error", err)
	} else {
		catalogRepo = repository.NewCachedCatalogRepository(catalogRepo, rdb, cfg.CacheTTL, logger)
	}

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	collectionService := service.NewCollectionService(
		txManager, collectionRepo, wishlistRepo, ledgerRepo, catalogRepo, auditRepo, logger)
	wishlistService := service.NewWishlistService(
		txManager, wishlistRepo, collectionRepo, ledgerRepo, catalogRepo, auditRepo, logger)
	minifigService := service.NewMinifigService(
		txManager, collectionRepo, ledgerRepo, catalogRepo, auditRepo, logger)
	migrationService := service.NewMigrationService(
		txManager, collectionRepo, ledgerRepo, catalogRepo, auditRepo, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL, logger)
	collectionHandler := handler.NewCollectionHandler(collectionService, logger)
	minifigHandler := handler.NewMinifigHandler(minifigService, logger)
	wishlistHandler := handler.NewWishlistHandler(wishlistService, logger)
	migrationHandler := handler.NewMigrationHandler(migrationService, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerSecond, cfg.AuthRateBurst)

	v1 := r.Group("/api/v1")
	authHandler.RegisterRoutes(v1.Group("/auth", authLimiter.Middleware()))

	protected := v1.Group("", middleware.AuthMiddleware(authService))
	collectionGroup := protected.Group("/collection")
	collectionHandler.RegisterRoutes(collectionGroup)
	minifigHandler.RegisterRoutes(collectionGroup)
	wishlistHandler.RegisterRoutes(protected.Group("/wishlist"))
	migrationHandler.RegisterRoutes(protected.Group("/migration"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting API server", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(h)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
