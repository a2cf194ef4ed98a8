package main

import (
	"github.com/nmoreno/tallerplus/backend/internal/config"
	"github.com/nmoreno/tallerplus/backend/internal/handlers"
	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/services"
	"github.com/nmoreno/tallerplus/backend/internal/utils"
	"github.com/nmoreno/tallerplus/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the
// application.
type appServices struct {
	taskQueue   services.TaskQueue
	worker      *services.Worker
	cleanupTask *services.TokenCleanupTask

	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	workshopHandler     *handlers.WorkshopHandler
	vehicleHandler      *handlers.VehicleHandler
	catalogHandler      *handlers.CatalogHandler
	pricingHandler      *handlers.PricingHandler
	quotationHandler    *handlers.QuotationHandler
	workOrderHandler    *handlers.WorkOrderHandler
	appointmentHandler  *handlers.AppointmentHandler
	notificationHandler *handlers.NotificationHandler
	adminHandler        *handlers.AdminHandler
	healthHandler       *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, services,
// schedulers and handlers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	db := models.GetDB()
	services.InitAuditLogger(db)

	// Task queue carries outbound email, async over Redis when enabled.
	taskQueue := services.InitTaskQueue(cfg)
	emailService := services.NewEmailService(&cfg.Email, taskQueue)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(emailService.Deliver)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(emailService.Deliver)
			if err := worker.Start(); err != nil {
				logger.Warn().Err(err).Msg("Failed to start async worker")
			}
		}
	}

	authService := services.NewAuthService(db, &cfg.JWT)
	if err := authService.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	resetService := services.NewPasswordResetService(db, emailService)
	auditService := services.NewAuditLogService(db)

	// Daily purge of expired refresh tokens and stale audit entries.
	cleanupTask := services.NewTokenCleanupTask(authService.RefreshTokens(), auditService)
	cleanupTask.Start()

	flagService := services.NewFeatureFlagService(db)
	userService := services.NewUserService(db)
	workshopService := services.NewWorkshopService(db)
	catalogService := services.NewCatalogService(db)
	vehicleService := services.NewVehicleService(db, catalogService)
	pricingService := services.NewPricingService(db)
	notificationService := services.NewNotificationService(db, flagService)
	requestService := services.NewQuotationRequestService(db)
	quotationService := services.NewQuotationService(db, requestService, notificationService)
	workOrderService := services.NewWorkOrderService(db, notificationService)
	appointmentService := services.NewAppointmentService(db, notificationService)

	return &appServices{
		taskQueue:   taskQueue,
		worker:      worker,
		cleanupTask: cleanupTask,

		authHandler:         handlers.NewAuthHandler(authService, resetService, cfg),
		userHandler:         handlers.NewUserHandler(userService),
		workshopHandler:     handlers.NewWorkshopHandler(workshopService),
		vehicleHandler:      handlers.NewVehicleHandler(vehicleService),
		catalogHandler:      handlers.NewCatalogHandler(catalogService),
		pricingHandler:      handlers.NewPricingHandler(pricingService, userService),
		quotationHandler:    handlers.NewQuotationHandler(requestService, quotationService, userService),
		workOrderHandler:    handlers.NewWorkOrderHandler(workOrderService, userService),
		appointmentHandler:  handlers.NewAppointmentHandler(appointmentService, userService),
		notificationHandler: handlers.NewNotificationHandler(notificationService),
		adminHandler:        handlers.NewAdminHandler(flagService, auditService, cleanupTask),
		healthHandler:       handlers.NewHealthHandler(),
	}
}

// shutdown gracefully stops all background services.
func (s *appServices) shutdown() {
	s.cleanupTask.Stop()
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("All background services stopped")
}
