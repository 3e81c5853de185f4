package handlers

import (
	"net/http"

	"storefront-config-backend/internal/models"
	"storefront-config-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ThemeHandler struct {
	themeService *service.ThemeService
}

func NewThemeHandler(themeService *service.ThemeService) *ThemeHandler {
	return &ThemeHandler{themeService: themeService}
}

// GetTheme returns the store's draft theme settings, creating defaults on
// first access.
// GET /api/v1/admin/stores/:storeId/theme
func (h *ThemeHandler) GetTheme(c *gin.Context) {
	theme, err := h.themeService.GetDraft(c.Param("storeId"))
	if err != nil {
		respondServiceError(c, err, "Failed to get theme settings", map[string]interface{}{
			"store_id": c.Param("storeId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// UpdateTheme patches the draft theme settings. Custom CSS must parse;
// invalid stylesheets are rejected before anything is stored.
// PUT /api/v1/admin/stores/:storeId/theme
func (h *ThemeHandler) UpdateTheme(c *gin.Context) {
	var req models.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	theme, err := h.themeService.UpdateDraft(c.Param("storeId"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update theme settings", map[string]interface{}{
			"store_id": c.Param("storeId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": theme})
}
