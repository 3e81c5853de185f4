package handlers

import (
	"net/http"
	"strconv"

	"storefront-config-backend/internal/models"
	"storefront-config-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type LayoutHandler struct {
	layoutService   *service.LayoutService
	resolverService *service.ResolverService
}

func NewLayoutHandler(layoutService *service.LayoutService, resolverService *service.ResolverService) *LayoutHandler {
	return &LayoutHandler{
		layoutService:   layoutService,
		resolverService: resolverService,
	}
}

func layoutID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("layoutId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid layout id"})
		return 0, false
	}
	return uint(id), true
}

// CreateLayout creates a draft layout seeded with the default sections for
// its page type.
// POST /api/v1/admin/stores/:storeId/layouts
func (h *LayoutHandler) CreateLayout(c *gin.Context) {
	var req models.CreateLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	layout, err := h.layoutService.CreateDraft(c.Param("storeId"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create layout", map[string]interface{}{
			"store_id":  c.Param("storeId"),
			"page_type": req.PageType,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"layout": layout})
}

// GetLayouts lists every layout of a store, drafts and published.
// GET /api/v1/admin/stores/:storeId/layouts
func (h *LayoutHandler) GetLayouts(c *gin.Context) {
	layouts, err := h.layoutService.GetAllLayouts(c.Param("storeId"))
	if err != nil {
		respondServiceError(c, err, "Failed to list layouts", map[string]interface{}{
			"store_id": c.Param("storeId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"layouts": layouts})
}

// GetLayout returns one layout with its sections and blocks.
// GET /api/v1/admin/stores/:storeId/layouts/:layoutId
func (h *LayoutHandler) GetLayout(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	layout, err := h.layoutService.GetLayout(c.Param("storeId"), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get layout", map[string]interface{}{
			"store_id":  c.Param("storeId"),
			"layout_id": id,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// DeleteLayout removes a layout and everything under it.
// DELETE /api/v1/admin/stores/:storeId/layouts/:layoutId
func (h *LayoutHandler) DeleteLayout(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	if err := h.layoutService.DeleteLayout(c.Param("storeId"), id); err != nil {
		respondServiceError(c, err, "Failed to delete layout", map[string]interface{}{
			"store_id":  c.Param("storeId"),
			"layout_id": id,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Layout deleted successfully"})
}

// AddSection inserts a section into a draft layout at the requested position,
// appending when no position is given.
// POST /api/v1/admin/stores/:storeId/layouts/:layoutId/sections
func (h *LayoutHandler) AddSection(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	var req models.AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sections, err := h.layoutService.AddSection(c.Param("storeId"), id, req)
	if err != nil {
		respondServiceError(c, err, "Failed to add section", map[string]interface{}{
			"store_id":  c.Param("storeId"),
			"layout_id": id,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sections": sections})
}

// RemoveSection deletes a section and its blocks. Locked sections refuse.
// DELETE /api/v1/admin/stores/:storeId/layouts/:layoutId/sections/:sectionId
func (h *LayoutHandler) RemoveSection(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	sections, err := h.layoutService.RemoveSection(c.Param("storeId"), id, c.Param("sectionId"))
	if err != nil {
		respondServiceError(c, err, "Failed to remove section", map[string]interface{}{
			"store_id":   c.Param("storeId"),
			"layout_id":  id,
			"section_id": c.Param("sectionId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// MoveSection moves a section to a new position; out-of-range positions are
// clamped. Locked sections refuse.
// POST /api/v1/admin/stores/:storeId/layouts/:layoutId/sections/:sectionId/move
func (h *LayoutHandler) MoveSection(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	var req models.MoveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sections, err := h.layoutService.MoveSection(c.Param("storeId"), id, c.Param("sectionId"), *req.Position)
	if err != nil {
		respondServiceError(c, err, "Failed to move section", map[string]interface{}{
			"store_id":   c.Param("storeId"),
			"layout_id":  id,
			"section_id": c.Param("sectionId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// UpdateSection patches a section's settings, style, responsive overrides or
// classes. Allowed even on locked sections.
// PUT /api/v1/admin/stores/:storeId/layouts/:layoutId/sections/:sectionId
func (h *LayoutHandler) UpdateSection(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	var req models.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	section, err := h.layoutService.UpdateSection(c.Param("storeId"), id, c.Param("sectionId"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update section", map[string]interface{}{
			"store_id":   c.Param("storeId"),
			"layout_id":  id,
			"section_id": c.Param("sectionId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section})
}

// SetSectionVisibility flips a section's visibility without touching layout
// order. Allowed even on locked sections.
// PUT /api/v1/admin/stores/:storeId/layouts/:layoutId/sections/:sectionId/visibility
func (h *LayoutHandler) SetSectionVisibility(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	var req models.SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	section, err := h.layoutService.SetSectionVisibility(c.Param("storeId"), id, c.Param("sectionId"), *req.Visible)
	if err != nil {
		respondServiceError(c, err, "Failed to set section visibility", map[string]interface{}{
			"store_id":   c.Param("storeId"),
			"layout_id":  id,
			"section_id": c.Param("sectionId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section})
}

// DuplicateSection clones a section with fresh ids right after the original.
// POST /api/v1/admin/stores/:storeId/layouts/:layoutId/sections/:sectionId/duplicate
func (h *LayoutHandler) DuplicateSection(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	sections, err := h.layoutService.DuplicateSection(c.Param("storeId"), id, c.Param("sectionId"))
	if err != nil {
		respondServiceError(c, err, "Failed to duplicate section", map[string]interface{}{
			"store_id":   c.Param("storeId"),
			"layout_id":  id,
			"section_id": c.Param("sectionId"),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sections": sections})
}

// Validate runs the pre-publish checks against the draft without publishing.
// POST /api/v1/admin/stores/:storeId/layouts/:layoutId/validate
func (h *LayoutHandler) Validate(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	result, err := h.resolverService.Validate(c.Param("storeId"), id)
	if err != nil {
		respondServiceError(c, err, "Failed to validate layout", map[string]interface{}{
			"store_id":  c.Param("storeId"),
			"layout_id": id,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Publish validates the draft and, if clean, swaps it into the published
// variant. A failed validation comes back as 422 with every error listed.
// POST /api/v1/admin/stores/:storeId/layouts/:layoutId/publish
func (h *LayoutHandler) Publish(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	result, err := h.resolverService.Publish(c.Param("storeId"), id)
	if err != nil {
		respondServiceError(c, err, "Failed to publish layout", map[string]interface{}{
			"store_id":  c.Param("storeId"),
			"layout_id": id,
		})
		return
	}

	if !result.Valid {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Layout published successfully", "validation": result})
}
