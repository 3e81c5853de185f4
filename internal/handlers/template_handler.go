package handlers

import (
	"net/http"
	"strconv"

	"storefront-config-backend/internal/models"
	"storefront-config-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateService *service.TemplateService
}

func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

func templateID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("templateId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return 0, false
	}
	return uint(id), true
}

// CreateTemplate creates a loop-page template seeded with the default widget
// set for its type.
// POST /api/v1/admin/stores/:storeId/templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req models.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tmpl, err := h.templateService.CreateTemplate(c.Param("storeId"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create template", map[string]interface{}{
			"store_id":      c.Param("storeId"),
			"template_type": req.TemplateType,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"template": tmpl})
}

// GetTemplates lists every template of a store.
// GET /api/v1/admin/stores/:storeId/templates
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	templates, err := h.templateService.GetAllTemplates(c.Param("storeId"))
	if err != nil {
		respondServiceError(c, err, "Failed to list templates", map[string]interface{}{
			"store_id": c.Param("storeId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// GetTemplate returns one template with its widgets.
// GET /api/v1/admin/stores/:storeId/templates/:templateId
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, ok := templateID(c)
	if !ok {
		return
	}

	tmpl, err := h.templateService.GetTemplate(c.Param("storeId"), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get template", map[string]interface{}{
			"store_id":    c.Param("storeId"),
			"template_id": id,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": tmpl})
}

// DeleteTemplate removes a template and its widgets.
// DELETE /api/v1/admin/stores/:storeId/templates/:templateId
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id, ok := templateID(c)
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(c.Param("storeId"), id); err != nil {
		respondServiceError(c, err, "Failed to delete template", map[string]interface{}{
			"store_id":    c.Param("storeId"),
			"template_id": id,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

// AddWidget inserts a widget into a template at the requested position.
// POST /api/v1/admin/stores/:storeId/templates/:templateId/widgets
func (h *TemplateHandler) AddWidget(c *gin.Context) {
	id, ok := templateID(c)
	if !ok {
		return
	}

	var req models.AddWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	widgets, err := h.templateService.AddWidget(c.Param("storeId"), id, req)
	if err != nil {
		respondServiceError(c, err, "Failed to add widget", map[string]interface{}{
			"store_id":    c.Param("storeId"),
			"template_id": id,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"widgets": widgets})
}

// RemoveWidget deletes a widget; the rest of the template renumbers.
// DELETE /api/v1/admin/stores/:storeId/templates/:templateId/widgets/:widgetId
func (h *TemplateHandler) RemoveWidget(c *gin.Context) {
	id, ok := templateID(c)
	if !ok {
		return
	}

	widgets, err := h.templateService.RemoveWidget(c.Param("storeId"), id, c.Param("widgetId"))
	if err != nil {
		respondServiceError(c, err, "Failed to remove widget", map[string]interface{}{
			"store_id":    c.Param("storeId"),
			"template_id": id,
			"widget_id":   c.Param("widgetId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"widgets": widgets})
}

// MoveWidget moves a widget to a new position; positions are clamped.
// POST /api/v1/admin/stores/:storeId/templates/:templateId/widgets/:widgetId/move
func (h *TemplateHandler) MoveWidget(c *gin.Context) {
	id, ok := templateID(c)
	if !ok {
		return
	}

	var req models.MoveWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	widgets, err := h.templateService.MoveWidget(c.Param("storeId"), id, c.Param("widgetId"), *req.Position)
	if err != nil {
		respondServiceError(c, err, "Failed to move widget", map[string]interface{}{
			"store_id":    c.Param("storeId"),
			"template_id": id,
			"widget_id":   c.Param("widgetId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"widgets": widgets})
}

// UpdateWidget patches a widget's variable binding or settings.
// PUT /api/v1/admin/stores/:storeId/templates/:templateId/widgets/:widgetId
func (h *TemplateHandler) UpdateWidget(c *gin.Context) {
	id, ok := templateID(c)
	if !ok {
		return
	}

	var req models.UpdateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	widget, err := h.templateService.UpdateWidget(c.Param("storeId"), id, c.Param("widgetId"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update widget", map[string]interface{}{
			"store_id":    c.Param("storeId"),
			"template_id": id,
			"widget_id":   c.Param("widgetId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"widget": widget})
}

// SetWidgetVisibility flips a widget's visibility flag.
// PUT /api/v1/admin/stores/:storeId/templates/:templateId/widgets/:widgetId/visibility
func (h *TemplateHandler) SetWidgetVisibility(c *gin.Context) {
	id, ok := templateID(c)
	if !ok {
		return
	}

	var req models.SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	widget, err := h.templateService.SetWidgetVisibility(c.Param("storeId"), id, c.Param("widgetId"), *req.Visible)
	if err != nil {
		respondServiceError(c, err, "Failed to set widget visibility", map[string]interface{}{
			"store_id":    c.Param("storeId"),
			"template_id": id,
			"widget_id":   c.Param("widgetId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"widget": widget})
}
