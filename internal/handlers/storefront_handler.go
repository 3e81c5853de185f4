package handlers

import (
	"net/http"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/service"
	"storefront-config-backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type StorefrontHandler struct {
	resolverService *service.ResolverService
	templateService *service.TemplateService
}

func NewStorefrontHandler(resolverService *service.ResolverService, templateService *service.TemplateService) *StorefrontHandler {
	return &StorefrontHandler{
		resolverService: resolverService,
		templateService: templateService,
	}
}

// GetPageConfig returns the canonical document for one page. Query params:
// handle selects a non-default layout, variant=draft previews unpublished
// work, device resolves tablet or mobile overrides into the base values.
// GET /api/v1/storefront/:storeId/config/:pageType
func (h *StorefrontHandler) GetPageConfig(c *gin.Context) {
	storeID := c.Param("storeId")
	pageType := c.Param("pageType")

	if !constants.IsValidPageType(pageType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page type"})
		return
	}

	handle := c.Query("handle")
	if !validator.IsValidHandle(handle) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page handle"})
		return
	}

	config, err := h.resolverService.ResolvePageConfig(
		storeID,
		pageType,
		handle,
		c.DefaultQuery("variant", constants.VariantPublished),
	)
	if err != nil {
		respondServiceError(c, err, "Failed to resolve page config", map[string]interface{}{
			"store_id":  storeID,
			"page_type": pageType,
		})
		return
	}
	if config == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no layout for page"})
		return
	}

	if device := constants.NormaliseDevice(c.Query("device")); device != constants.DeviceDesktop {
		config = service.ApplyDeviceToConfig(config, device)
	}

	c.JSON(http.StatusOK, config)
}

// GetTemplate resolves a loop-page template by type and name, with only
// visible widgets in position order.
// GET /api/v1/storefront/:storeId/templates/:templateType/:name
func (h *StorefrontHandler) GetTemplate(c *gin.Context) {
	storeID := c.Param("storeId")
	templateType := c.Param("templateType")

	if !constants.IsValidTemplateType(templateType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template type"})
		return
	}

	tmpl, err := h.templateService.Resolve(storeID, templateType, c.Param("name"))
	if err != nil {
		respondServiceError(c, err, "Failed to resolve template", map[string]interface{}{
			"store_id":      storeID,
			"template_type": templateType,
		})
		return
	}
	if tmpl == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}

	c.JSON(http.StatusOK, tmpl)
}
