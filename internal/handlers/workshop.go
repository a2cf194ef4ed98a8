package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/services"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

type WorkshopHandler struct {
	workshopService *services.WorkshopService
}

func NewWorkshopHandler(workshopService *services.WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{workshopService: workshopService}
}

// List returns all workshops
// GET /api/workshops
func (h *WorkshopHandler) List(c *gin.Context) {
	workshops, err := h.workshopService.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, workshops)
}

// Get returns one workshop
// GET /api/workshops/:id
func (h *WorkshopHandler) Get(c *gin.Context) {
	workshop, err := h.workshopService.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, workshop)
}

// Create registers a workshop
// POST /api/workshops
func (h *WorkshopHandler) Create(c *gin.Context) {
	var req services.CreateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	workshop, err := h.workshopService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, workshop)
}

// Update modifies a workshop
// PUT /api/workshops/:id
func (h *WorkshopHandler) Update(c *gin.Context) {
	var req services.UpdateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	workshop, err := h.workshopService.Update(c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, workshop)
}

// Delete removes a workshop
// DELETE /api/workshops/:id
func (h *WorkshopHandler) Delete(c *gin.Context) {
	if err := h.workshopService.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "workshop deleted"})
}
