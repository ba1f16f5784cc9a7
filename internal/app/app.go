package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobportal_backend/database"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/routes"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/validator"
	"jobportal_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, cfg.JWT.TTLMinutes)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Migrations applied")

	if err := seedFirstAdmin(gormDB); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// seedFirstAdmin creates the bootstrap admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD. Registration only issues seeker and recruiter roles, so
// without this there is no way to reach the admin-only endpoints.
func seedFirstAdmin(gormDB *gorm.DB) error {
	var count int64
	err := gormDB.Model(&models.User{}).
		Where("role = ?", models.UserRoleAdmin).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logger.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, no admin user seeded")
		return nil
	}
	if err := auth.ValidatePassword(adminPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := gormDB.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("Seeded first admin user", "email", adminEmail)
	return nil
}

// SetupRouter wires repositories, services, workers and handlers onto a gin
// engine. Workers are started on ctx and stop when it is cancelled.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	// Repositories.
	userRepo := repositories.NewUserRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	applicationRepo := repositories.NewJobApplicationRepository(gormDB)
	countRepo := repositories.NewApplicationCountRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	// Services.
	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo)

	var enricher services.Enricher
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		geminiEnricher, err := services.NewGeminiEnricher(ctx, apiKey, cfg.AI.GeminiModel)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini client", "error", err)
		}
		enricher = geminiEnricher
		logger.Info("Job enrichment enabled", "model", cfg.AI.GeminiModel)
	} else {
		logger.Warn("GEMINI_API_KEY not set, job enrichment disabled")
	}

	jobService := services.NewJobService(jobRepo, applicationRepo, userRepo, notificationService, enricher)

	engine := services.NewNotificationEngine(
		services.EngineConfig{
			CompanyJobsWindowDays: cfg.Engine.CompanyJobsWindowDays,
			StatusWindowDays:      cfg.Engine.StatusWindowDays,
			RetentionDays:         cfg.Engine.RetentionDays,
		},
		userRepo, jobRepo, applicationRepo, countRepo, notificationRepo, notificationService,
	)

	// Workers.
	notificationWorker := workers.NewNotificationWorker(
		engine, time.Duration(cfg.Engine.RunIntervalMinutes)*time.Minute)
	notificationWorker.Start(ctx)

	if cfg.Email.SMTPHost != "" {
		provider, err := email.NewSMTPProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUser,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
		})
		if err != nil {
			logger.Fatal("Failed to initialize email provider", "error", err)
		}
		dispatchWorker := workers.NewDispatchWorker(
			notificationService, userRepo, provider,
			time.Duration(cfg.Engine.DispatchIntervalSeconds)*time.Second)
		dispatchWorker.Start(ctx)
	} else {
		logger.Warn("SMTP not configured, notifications stay in the store unsent")
	}

	// Handlers.
	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &routes.AppHandlers{
		Auth:         handlers.NewAuthHandler(base, authService),
		Job:          handlers.NewJobHandler(base, jobService),
		Notification: handlers.NewNotificationHandler(base, notificationService, engine),
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())

	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}
