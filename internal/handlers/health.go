package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/services"
)

// HealthHandler reports the status of the service's subsystems.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	var activeSessions int64
	models.GetDB().Model(&models.RefreshToken{}).
		Where("is_revoked = ?", false).
		Count(&activeSessions)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "tallerplus",
		"components": gin.H{
			"database":        dbStatus,
			"queue_mode":      queueMode,
			"active_sessions": activeSessions,
		},
	})
}
