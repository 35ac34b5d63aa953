package handlers

import (
	"net/http"

	"github.com/czhengjuarez/FireDrill/internal/game"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListRoles godoc
// @Summary      Built-in roles
// @Tags         catalog
// @Produce      json
// @Success      200 {array} game.Role
// @Router       /api/catalog/roles [get]
func (h *CatalogHandler) ListRoles(c *gin.Context) {
	c.JSON(http.StatusOK, game.Roles())
}

// ListScenarios godoc
// @Summary      Built-in scenarios
// @Tags         catalog
// @Produce      json
// @Success      200 {array} models.ScenarioData
// @Router       /api/catalog/scenarios [get]
func (h *CatalogHandler) ListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, game.Scenarios())
}

// ListInjects godoc
// @Summary      Inject sequence for a scenario
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Scenario ID"
// @Success      200 {array} models.Inject
// @Failure      404 {object} ErrorResponse
// @Router       /api/catalog/scenarios/{id}/injects [get]
func (h *CatalogHandler) ListInjects(c *gin.Context) {
	injects := game.InjectsFor(c.Param("id"))
	if injects == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "scenario not found"})
		return
	}

	c.JSON(http.StatusOK, injects)
}

// ListNISTFunctions godoc
// @Summary      NIST CSF functions
// @Tags         catalog
// @Produce      json
// @Success      200 {array} game.NISTFunction
// @Router       /api/catalog/nist [get]
func (h *CatalogHandler) ListNISTFunctions(c *gin.Context) {
	c.JSON(http.StatusOK, game.NISTFunctions())
}
