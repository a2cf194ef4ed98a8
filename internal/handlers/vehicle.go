package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/middleware"
	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/services"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
}

func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// canAccess reports whether the caller may touch the vehicle. Customers own
// their vehicles, workshops and admins see everything.
func canAccess(c *gin.Context, vehicle *models.Vehicle) bool {
	if middleware.GetRole(c) != models.RoleCustomer {
		return true
	}
	return vehicle.OwnerID == middleware.GetUserID(c)
}

// List returns the caller's vehicles
// GET /api/vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicleService.ListByOwner(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vehicles)
}

// Get returns one vehicle
// GET /api/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.vehicleService.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !canAccess(c, vehicle) {
		response.Forbidden(c, "vehicle belongs to another customer")
		return
	}
	response.Success(c, vehicle)
}

// Create registers a vehicle for the caller
// POST /api/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	var req services.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	vehicle, err := h.vehicleService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, vehicle)
}

// Update modifies a vehicle
// PUT /api/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	vehicle, err := h.vehicleService.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !canAccess(c, vehicle) {
		response.Forbidden(c, "vehicle belongs to another customer")
		return
	}

	var req services.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.vehicleService.Update(vehicle.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

// Delete removes a vehicle
// DELETE /api/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	vehicle, err := h.vehicleService.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !canAccess(c, vehicle) {
		response.Forbidden(c, "vehicle belongs to another customer")
		return
	}

	if err := h.vehicleService.Delete(vehicle.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "vehicle deleted"})
}
