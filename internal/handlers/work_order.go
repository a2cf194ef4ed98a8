package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/middleware"
	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/services"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

type WorkOrderHandler struct {
	workOrderService *services.WorkOrderService
	userService      *services.UserService
}

func NewWorkOrderHandler(workOrderService *services.WorkOrderService, userService *services.UserService) *WorkOrderHandler {
	return &WorkOrderHandler{workOrderService: workOrderService, userService: userService}
}

type advanceWorkOrderRequest struct {
	Status string `json:"status" binding:"required,oneof=IN_PROGRESS COMPLETED"`
}

// List returns work orders scoped to the caller: a workshop sees its own
// orders, a customer sees orders on their vehicles.
// GET /api/work-orders
func (h *WorkOrderHandler) List(c *gin.Context) {
	if middleware.GetRole(c) == models.RoleCustomer {
		orders, err := h.workOrderService.ListByCustomer(middleware.GetUserID(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, orders)
		return
	}

	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}
	orders, err := h.workOrderService.ListByWorkshop(workshopID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, orders)
}

// Get returns one work order
// GET /api/work-orders/:id
func (h *WorkOrderHandler) Get(c *gin.Context) {
	order, err := h.workOrderService.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}

// Advance moves a work order through its lifecycle
// POST /api/work-orders/:id/status
func (h *WorkOrderHandler) Advance(c *gin.Context) {
	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}

	var req advanceWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.workOrderService.Advance(c.Param("id"), workshopID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}
