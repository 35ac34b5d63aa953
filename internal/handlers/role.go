package handlers

import (
	"net/http"

	"github.com/czhengjuarez/FireDrill/internal/models"
	"github.com/czhengjuarez/FireDrill/internal/services"

	"github.com/gin-gonic/gin"
)

type CustomRoleHandler struct {
	roleService *services.CustomRoleService
}

func NewCustomRoleHandler(roleService *services.CustomRoleService) *CustomRoleHandler {
	return &CustomRoleHandler{roleService: roleService}
}

// ListCustomRoles godoc
// @Summary      List custom roles
// @Tags         custom-roles
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} CustomRole
// @Router       /api/custom-roles [get]
func (h *CustomRoleHandler) ListCustomRoles(c *gin.Context) {
	roles, err := h.roleService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list custom roles"})
		return
	}

	c.JSON(http.StatusOK, roles)
}

// CreateCustomRole godoc
// @Summary      Create a custom role
// @Tags         custom-roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CustomRole true "Role data"
// @Success      201 {object} CustomRole
// @Failure      400 {object} ErrorResponse
// @Router       /api/custom-roles [post]
func (h *CustomRoleHandler) CreateCustomRole(c *gin.Context) {
	var role models.CustomRole
	if err := c.ShouldBindJSON(&role); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.roleService.Create(&role)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// DeleteCustomRole godoc
// @Summary      Delete a custom role
// @Tags         custom-roles
// @Security     BearerAuth
// @Param        id path string true "Role ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /api/custom-roles/{id} [delete]
func (h *CustomRoleHandler) DeleteCustomRole(c *gin.Context) {
	if err := h.roleService.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
