package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/services"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

// AdminHandler exposes operational endpoints: feature flags, audit logs and
// the manual token cleanup trigger.
type AdminHandler struct {
	flagService  *services.FeatureFlagService
	auditService *services.AuditLogService
	cleanupTask  *services.TokenCleanupTask
}

func NewAdminHandler(flagService *services.FeatureFlagService, auditService *services.AuditLogService, cleanupTask *services.TokenCleanupTask) *AdminHandler {
	return &AdminHandler{
		flagService:  flagService,
		auditService: auditService,
		cleanupTask:  cleanupTask,
	}
}

type setFlagRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ListFlags returns all feature flags
// GET /api/admin/flags
func (h *AdminHandler) ListFlags(c *gin.Context) {
	flags, err := h.flagService.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, flags)
}

// SetFlag toggles one feature flag
// PUT /api/admin/flags/:key
func (h *AdminHandler) SetFlag(c *gin.Context) {
	var req setFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.flagService.Set(c.Param("key"), *req.Enabled); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"key": c.Param("key"), "enabled": *req.Enabled})
}

// ListAuditLogs returns the audit trail, paginated and filterable
// GET /api/admin/audit-logs
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	var req services.AuditLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	logs, err := h.auditService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, logs)
}

// CleanupTokens triggers the expired-token purge outside its schedule
// POST /api/admin/cleanup-tokens
func (h *AdminHandler) CleanupTokens(c *gin.Context) {
	deleted, err := h.cleanupTask.RunNow()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}
