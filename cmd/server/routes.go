package main

import (
	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/config"
	"github.com/nmoreno/tallerplus/backend/internal/middleware"
	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices, cfg *config.Config) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(cfg.Email.FrontendURL))

	r.GET("/health", svc.healthHandler.CheckHealth)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			// Credential endpoints get a tight per-IP budget.
			limited := auth.Group("", middleware.AuthRateLimit(5, 10))
			{
				limited.POST("/register", svc.authHandler.Register)
				limited.POST("/login", svc.authHandler.Login)
				limited.POST("/forgot-password", svc.authHandler.ForgotPassword)
				limited.POST("/reset-password", svc.authHandler.ResetPassword)
			}
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.POST("/logout", svc.authHandler.Logout)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditWrites())
		{
			// Auth session management
			protected.GET("/auth/me", svc.authHandler.Me)
			protected.POST("/auth/logout-all", svc.authHandler.LogoutAll)
			protected.GET("/auth/sessions", svc.authHandler.ListSessions)
			protected.DELETE("/auth/sessions/:deviceId", svc.authHandler.LogoutDevice)

			// Users
			protected.GET("/users", middleware.RoleRequired(models.RoleAdmin), svc.userHandler.List)
			protected.GET("/users/:id", svc.userHandler.Get)
			protected.PUT("/users/:id", svc.userHandler.Update)
			protected.DELETE("/users/:id", middleware.RoleRequired(models.RoleAdmin), svc.userHandler.Delete)

			// Workshops
			protected.GET("/workshops", svc.workshopHandler.List)
			protected.GET("/workshops/:id", svc.workshopHandler.Get)
			protected.POST("/workshops", middleware.RoleRequired(models.RoleAdmin), svc.workshopHandler.Create)
			protected.PUT("/workshops/:id", middleware.RoleRequired(models.RoleAdmin), svc.workshopHandler.Update)
			protected.DELETE("/workshops/:id", middleware.RoleRequired(models.RoleAdmin), svc.workshopHandler.Delete)

			// Workshop price lists
			protected.GET("/workshops/:id/parts", svc.pricingHandler.ListParts)
			protected.GET("/workshops/:id/labor-tasks", svc.pricingHandler.ListLaborTasks)
			workshopOnly := middleware.RoleRequired(models.RoleWorkshop)
			protected.POST("/parts", workshopOnly, svc.pricingHandler.CreatePart)
			protected.PUT("/parts/:id", workshopOnly, svc.pricingHandler.UpdatePart)
			protected.DELETE("/parts/:id", workshopOnly, svc.pricingHandler.DeletePart)
			protected.POST("/labor-tasks", workshopOnly, svc.pricingHandler.CreateLaborTask)
			protected.PUT("/labor-tasks/:id", workshopOnly, svc.pricingHandler.UpdateLaborTask)
			protected.DELETE("/labor-tasks/:id", workshopOnly, svc.pricingHandler.DeleteLaborTask)

			// Vehicle catalog
			protected.GET("/catalog/brands", svc.catalogHandler.ListBrands)
			protected.POST("/catalog/brands", middleware.RoleRequired(models.RoleAdmin), svc.catalogHandler.CreateBrand)
			protected.DELETE("/catalog/brands/:id", middleware.RoleRequired(models.RoleAdmin), svc.catalogHandler.DeleteBrand)
			protected.GET("/catalog/models", svc.catalogHandler.ListModels)
			protected.POST("/catalog/models", middleware.RoleRequired(models.RoleAdmin), svc.catalogHandler.CreateModel)
			protected.DELETE("/catalog/models/:id", middleware.RoleRequired(models.RoleAdmin), svc.catalogHandler.DeleteModel)

			// Vehicles
			customerOnly := middleware.RoleRequired(models.RoleCustomer)
			protected.GET("/vehicles", customerOnly, svc.vehicleHandler.List)
			protected.GET("/vehicles/:id", svc.vehicleHandler.Get)
			protected.POST("/vehicles", customerOnly, svc.vehicleHandler.Create)
			protected.PUT("/vehicles/:id", svc.vehicleHandler.Update)
			protected.DELETE("/vehicles/:id", svc.vehicleHandler.Delete)

			// Quotation requests
			protected.GET("/quotation-requests", svc.quotationHandler.ListRequests)
			protected.POST("/quotation-requests", customerOnly, svc.quotationHandler.CreateRequest)
			protected.POST("/quotation-requests/:id/close", customerOnly, svc.quotationHandler.CloseRequest)
			protected.GET("/quotation-requests/:id/quotations", customerOnly, svc.quotationHandler.ListQuotationsForRequest)

			// Quotations
			protected.GET("/quotations", workshopOnly, svc.quotationHandler.ListQuotations)
			protected.POST("/quotations", workshopOnly, svc.quotationHandler.CreateQuotation)
			protected.POST("/quotations/:id/accept", customerOnly, svc.quotationHandler.AcceptQuotation)
			protected.POST("/quotations/:id/reject", customerOnly, svc.quotationHandler.RejectQuotation)

			// Work orders
			protected.GET("/work-orders", svc.workOrderHandler.List)
			protected.GET("/work-orders/:id", svc.workOrderHandler.Get)
			protected.POST("/work-orders/:id/status", workshopOnly, svc.workOrderHandler.Advance)

			// Appointments
			protected.GET("/appointments", svc.appointmentHandler.List)
			protected.POST("/appointments", customerOnly, svc.appointmentHandler.Create)
			protected.POST("/appointments/:id/cancel", svc.appointmentHandler.Cancel)
			protected.POST("/appointments/:id/complete", workshopOnly, svc.appointmentHandler.Complete)

			// Notifications
			protected.GET("/notifications", svc.notificationHandler.List)
			protected.GET("/notifications/unread-count", svc.notificationHandler.UnreadCount)
			protected.POST("/notifications/:id/read", svc.notificationHandler.MarkRead)
			protected.POST("/notifications/read-all", svc.notificationHandler.MarkAllRead)

			// Admin
			admin := protected.Group("/admin", middleware.RoleRequired(models.RoleAdmin))
			{
				admin.GET("/flags", svc.adminHandler.ListFlags)
				admin.PUT("/flags/:key", svc.adminHandler.SetFlag)
				admin.GET("/audit-logs", svc.adminHandler.ListAuditLogs)
				admin.POST("/cleanup-tokens", svc.adminHandler.CleanupTokens)
			}
		}
	}
}
