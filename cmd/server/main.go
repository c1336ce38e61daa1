package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/config"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/middleware"
	projectentity "github.com/Legacy-Solutions-Inc/arsd-ops/internal/project/entity"
	projecthandler "github.com/Legacy-Solutions-Inc/arsd-ops/internal/project/handler"
	projectrepo "github.com/Legacy-Solutions-Inc/arsd-ops/internal/project/repository"
	projectservice "github.com/Legacy-Solutions-Inc/arsd-ops/internal/project/service"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/storage"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/entity"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/handler"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/repository"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting arsd-ops service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	var store *storage.Client
	if cfg.MinIO.Endpoint != "" {
		store, err = storage.New(cfg.MinIO)
		if err != nil {
			zapLogger.Fatal("Failed to connect to object storage", zap.Error(err))
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			zapLogger.Fatal("Failed to prepare storage bucket", zap.Error(err))
		}
	} else {
		zapLogger.Warn("Object storage not configured, uploads disabled")
	}

	warehouseRepos := repository.NewRepositories(db)
	warehouseServices := service.NewServices(warehouseRepos, rdb, cfg, zapLogger)
	warehouseHandlers := handler.NewHandlers(warehouseServices, store)

	projectHandler := projecthandler.NewProjectHandler(
		projectservice.NewProjectService(projectrepo.NewProjectRepository(db)),
	)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, projectHandler, warehouseHandlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&projectentity.Project{},
		&entity.IPOWItem{},
		&entity.DeliveryReceipt{},
		&entity.DeliveryItem{},
		&entity.ReleaseForm{},
		&entity.ReleaseItem{},
		&entity.POOverride{},
	)
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Host == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, ph *projecthandler.ProjectHandler, wh *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			// Projects
			projects := authorized.Group("/projects")
			{
				projects.GET("", ph.List)
				projects.POST("", middleware.RequireRole(middleware.RoleProjectMgmt), ph.Create)
				projects.GET("/:id", ph.Get)
				projects.PUT("/:id", middleware.RequireRole(middleware.RoleProjectMgmt), ph.Update)

				// IPOW plan
				projects.GET("/:id/ipow", wh.IPOW.List)
				projects.POST("/:id/ipow/import", middleware.RequireRole(middleware.RoleAdmin), wh.IPOW.Import)

				// Stock reconciliation
				projects.GET("/:id/stock", wh.Stock.Get)
				projects.GET("/:id/stock/export", wh.Stock.Export)
				projects.PUT("/:id/stock/po", middleware.RequireRole(middleware.RoleWarehouse), wh.Stock.SetPO)
			}

			// Delivery receipts
			deliveries := authorized.Group("/delivery-receipts")
			{
				deliveries.GET("", wh.Delivery.List)
				deliveries.POST("", middleware.RequireRole(middleware.RoleWarehouse), wh.Delivery.Create)
				deliveries.GET("/:id", wh.Delivery.Get)
				deliveries.PUT("/:id/lock", middleware.RequireRole(middleware.RoleAdmin), wh.Delivery.SetLock)
			}

			// Release forms
			releases := authorized.Group("/release-forms")
			{
				releases.GET("", wh.Release.List)
				releases.POST("", middleware.RequireRole(middleware.RoleWarehouse), wh.Release.Create)
				releases.GET("/:id", wh.Release.Get)
				releases.PUT("/:id", middleware.RequireRole(middleware.RoleWarehouse), wh.Release.Update)
				releases.PUT("/:id/lock", middleware.RequireRole(middleware.RoleAdmin), wh.Release.SetLock)
			}

			// Uploads
			authorized.POST("/uploads/presign", middleware.RequireRole(middleware.RoleWarehouse), wh.Upload.Presign)
		}
	}
}
