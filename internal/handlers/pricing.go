package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/middleware"
	"github.com/nmoreno/tallerplus/backend/internal/services"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

type PricingHandler struct {
	pricingService *services.PricingService
	userService    *services.UserService
}

func NewPricingHandler(pricingService *services.PricingService, userService *services.UserService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService, userService: userService}
}

// callerWorkshopID resolves the workshop the authenticated user works for.
func callerWorkshopID(c *gin.Context, userService *services.UserService) (string, bool) {
	user, err := userService.GetByID(middleware.GetUserID(c))
	if err != nil || user.WorkshopID == nil {
		response.Forbidden(c, "user is not attached to a workshop")
		return "", false
	}
	return *user.WorkshopID, true
}

// ListParts returns a workshop's part price list
// GET /api/workshops/:id/parts
func (h *PricingHandler) ListParts(c *gin.Context) {
	parts, err := h.pricingService.ListParts(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, parts)
}

// CreatePart adds a part to the caller's workshop
// POST /api/parts
func (h *PricingHandler) CreatePart(c *gin.Context) {
	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}

	var req services.PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	part, err := h.pricingService.CreatePart(workshopID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, part)
}

// UpdatePart modifies a part
// PUT /api/parts/:id
func (h *PricingHandler) UpdatePart(c *gin.Context) {
	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}

	var req services.PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	part, err := h.pricingService.UpdatePart(c.Param("id"), workshopID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, part)
}

// DeletePart removes a part
// DELETE /api/parts/:id
func (h *PricingHandler) DeletePart(c *gin.Context) {
	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}

	if err := h.pricingService.DeletePart(c.Param("id"), workshopID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "part deleted"})
}

// ListLaborTasks returns a workshop's labor price list
// GET /api/workshops/:id/labor-tasks
func (h *PricingHandler) ListLaborTasks(c *gin.Context) {
	tasks, err := h.pricingService.ListLaborTasks(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tasks)
}

// CreateLaborTask adds a labor task to the caller's workshop
// POST /api/labor-tasks
func (h *PricingHandler) CreateLaborTask(c *gin.Context) {
	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}

	var req services.LaborTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.pricingService.CreateLaborTask(workshopID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

// UpdateLaborTask modifies a labor task
// PUT /api/labor-tasks/:id
func (h *PricingHandler) UpdateLaborTask(c *gin.Context) {
	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}

	var req services.LaborTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.pricingService.UpdateLaborTask(c.Param("id"), workshopID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// DeleteLaborTask removes a labor task
// DELETE /api/labor-tasks/:id
func (h *PricingHandler) DeleteLaborTask(c *gin.Context) {
	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}

	if err := h.pricingService.DeleteLaborTask(c.Param("id"), workshopID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "labor task deleted"})
}
