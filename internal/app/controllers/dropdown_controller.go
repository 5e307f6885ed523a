package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/onboarding-api/internal/app/services"
)

// DropdownController serves the static dropdown option lists
type DropdownController struct {
	service services.DropdownService
}

// NewDropdownController creates a new DropdownController
func NewDropdownController(service services.DropdownService) *DropdownController {
	return &DropdownController{service: service}
}

// Options handles fetching the dropdown options
// @Summary Get dropdown options
// @Description Returns the static option lists for gender, citizenship, countries, states and professions
// @Tags dropdown-options
// @Produce json
// @Success 200 {object} dto.DropdownOptions "Option lists"
// @Router /dropdown-options/ [get]
func (c *DropdownController) Options(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.Options())
}
