package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/middleware"
	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/services"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns the user directory
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// Get returns one user. Non-admins can only read their own record.
// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if middleware.GetRole(c) != models.RoleAdmin && middleware.GetUserID(c) != id {
		response.Forbidden(c, "insufficient permissions")
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// Update modifies profile fields. Non-admins can only update themselves.
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if middleware.GetRole(c) != models.RoleAdmin && middleware.GetUserID(c) != id {
		response.Forbidden(c, "insufficient permissions")
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// Delete removes a user and cascades its sessions
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "user deleted"})
}
