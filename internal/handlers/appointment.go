package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/middleware"
	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/services"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
	userService        *services.UserService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService, userService *services.UserService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService, userService: userService}
}

// List returns the caller's appointments, customer or workshop side.
// GET /api/appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	if middleware.GetRole(c) == models.RoleCustomer {
		appointments, err := h.appointmentService.ListByCustomer(middleware.GetUserID(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, appointments)
		return
	}

	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}
	appointments, err := h.appointmentService.ListByWorkshop(workshopID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, appointments)
}

// Create schedules a drop-off
// POST /api/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req services.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, appointment)
}

// Cancel withdraws a scheduled appointment
// POST /api/appointments/:id/cancel
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	appointment, err := h.appointmentService.Cancel(c.Param("id"), middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, appointment)
}

// Complete marks an appointment done after the drop-off
// POST /api/appointments/:id/complete
func (h *AppointmentHandler) Complete(c *gin.Context) {
	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}

	appointment, err := h.appointmentService.Complete(c.Param("id"), workshopID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, appointment)
}
