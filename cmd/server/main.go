package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adhivedhanlr-maker/ecommerce-backend/config"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/controller"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/service"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/db"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/middleware"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/router"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/scheduler"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/storage"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/logger"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Storefront Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: without it logout revocation degrades gracefully
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	resetRepo := repository.NewPasswordResetRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	passwordResetService := service.NewPasswordResetService(resetRepo, userRepo)
	onboardingService := service.NewOnboardingService(userRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	cartService := service.NewCartService(cartRepo, productRepo, cfg.Pricing)
	orderService := service.NewOrderService(orderRepo, cartRepo, cfg.Pricing, db.GetDB())
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	addressService := service.NewAddressService(addressRepo)

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Controllers
	authController := controller.NewAuthController(authService, passwordResetService)
	productController := controller.NewProductController(productService)
	categoryController := controller.NewCategoryController(categoryService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	wishlistController := controller.NewWishlistController(wishlistService)
	addressController := controller.NewAddressController(addressService)
	onboardingController := controller.NewOnboardingController(onboardingService)
	adminController := controller.NewAdminController(onboardingService, orderService)
	uploadController := controller.NewUploadController(s3Storage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Background jobs
	resetScheduler := scheduler.NewResetCodeScheduler(passwordResetService)
	if err := resetScheduler.Start(); err != nil {
		logger.Error("Failed to start reset code scheduler", err)
	}
	defer resetScheduler.Stop()

	r := router.NewRouter(
		authController,
		productController,
		categoryController,
		cartController,
		orderController,
		wishlistController,
		addressController,
		onboardingController,
		adminController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
