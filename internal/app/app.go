package app

import (
	"context"
	"errors"
	"fmt"

	"civix_backend/database"
	"civix_backend/internal/auth"
	"civix_backend/internal/config"
	"civix_backend/internal/handlers"
	"civix_backend/internal/logger"
	"civix_backend/internal/middleware"
	"civix_backend/internal/models"
	"civix_backend/internal/repositories"
	"civix_backend/internal/routes"
	"civix_backend/internal/services"
	"civix_backend/internal/sms"
	"civix_backend/internal/validator"
	"civix_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	cleanupWorker := workers.NewTokenCleanupWorker(gormDB, repositories.NewRefreshTokenRepository())
	cleanupWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	tokens := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		ResetSecret:   cfg.JWT.ResetSecret,
		AccessTTL:     cfg.AccessTTL(),
		RefreshTTL:    cfg.RefreshTTL(),
		ResetTTL:      cfg.ResetTTL(),
	})

	serviceContainer := initializeServices(cfg, tokens)
	appHandlers := initializeHandlers(serviceContainer)
	ginRouter := initializeGinRouter(gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers, tokens, serviceContainer.AuthService)

	return ginRouter
}

func initializeServices(cfg *config.Config, tokens *auth.TokenManager) *services.ServiceContainer {
	registerChannel, recoverChannel := buildSMSChannels(cfg)

	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	reportRepo := repositories.NewReportRepository()
	voteRepo := repositories.NewVoteRepository()
	followRepo := repositories.NewFollowRepository()

	authService := services.NewAuthService(userRepo, refreshTokenRepo, tokens, registerChannel, recoverChannel)
	userService := services.NewUserService(userRepo)
	reportService := services.NewReportService(reportRepo, voteRepo, followRepo)

	return &services.ServiceContainer{
		AuthService:   authService,
		UserService:   userService,
		ReportService: reportService,
	}
}

// buildSMSChannels wires the two isolated verification pathways. Without
// Twilio credentials (local development, CI) a logging mock is used instead.
func buildSMSChannels(cfg *config.Config) (*sms.Channel, *sms.Channel) {
	if cfg.Twilio.AccountSID == "" || cfg.Twilio.AuthToken == "" {
		logger.Warn("Twilio credentials not configured, using mock SMS provider")
		mock := &MockSMSProvider{}
		return sms.NewChannel(sms.ChannelRegister, mock),
			sms.NewChannel(sms.ChannelRecoverPassword, mock)
	}

	client := sms.NewTwilioClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
	registerProvider := sms.NewTwilioProvider(client, cfg.Twilio.RegisterServiceSID)
	recoverProvider := sms.NewTwilioProvider(client, cfg.Twilio.RecoverServiceSID)

	return sms.NewChannel(sms.ChannelRegister, registerProvider),
		sms.NewChannel(sms.ChannelRecoverPassword, recoverProvider)
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		Auth:   handlers.NewAuthHandler(baseHandler, container.AuthService),
		User:   handlers.NewUserHandler(baseHandler, container.UserService),
		Report: handlers.NewReportHandler(baseHandler, container.ReportService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminPhone := cfg.FirstAdminPhone
	adminPassword := cfg.FirstAdminPassword

	if adminPhone == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_PHONE or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("phone = ?", adminPhone).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "phone", adminPhone)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified phone. Creating first admin...", "phone", adminPhone)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Phone:        adminPhone,
		PasswordHash: hash,
		Name:         "Admin",
		LastName:     "Admin",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "phone", adminPhone)
	return nil
}
