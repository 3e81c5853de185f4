package handlers

import (
	"net/http"

	"storefront-config-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AddBlock appends or inserts a block into a section of a draft layout.
// POST /api/v1/admin/stores/:storeId/layouts/:layoutId/sections/:sectionId/blocks
func (h *LayoutHandler) AddBlock(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	var req models.AddBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	blocks, err := h.layoutService.AddBlock(c.Param("storeId"), id, c.Param("sectionId"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to add block", map[string]interface{}{
			"store_id":   c.Param("storeId"),
			"layout_id":  id,
			"section_id": c.Param("sectionId"),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"blocks": blocks})
}

// RemoveBlock deletes a block from its section.
// DELETE /api/v1/admin/stores/:storeId/layouts/:layoutId/sections/:sectionId/blocks/:blockId
func (h *LayoutHandler) RemoveBlock(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	blocks, err := h.layoutService.RemoveBlock(c.Param("storeId"), id, c.Param("sectionId"), c.Param("blockId"))
	if err != nil {
		respondServiceError(c, err, "Failed to remove block", map[string]interface{}{
			"store_id":   c.Param("storeId"),
			"layout_id":  id,
			"section_id": c.Param("sectionId"),
			"block_id":   c.Param("blockId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}

// MoveBlock moves a block within its section; positions are clamped.
// POST /api/v1/admin/stores/:storeId/layouts/:layoutId/sections/:sectionId/blocks/:blockId/move
func (h *LayoutHandler) MoveBlock(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	var req models.MoveBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	blocks, err := h.layoutService.MoveBlock(c.Param("storeId"), id, c.Param("sectionId"), c.Param("blockId"), *req.Position)
	if err != nil {
		respondServiceError(c, err, "Failed to move block", map[string]interface{}{
			"store_id":   c.Param("storeId"),
			"layout_id":  id,
			"section_id": c.Param("sectionId"),
			"block_id":   c.Param("blockId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}

// UpdateBlock patches a block's content, settings or style.
// PUT /api/v1/admin/stores/:storeId/layouts/:layoutId/sections/:sectionId/blocks/:blockId
func (h *LayoutHandler) UpdateBlock(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	var req models.UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	block, err := h.layoutService.UpdateBlock(c.Param("storeId"), id, c.Param("sectionId"), c.Param("blockId"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update block", map[string]interface{}{
			"store_id":   c.Param("storeId"),
			"layout_id":  id,
			"section_id": c.Param("sectionId"),
			"block_id":   c.Param("blockId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"block": block})
}

// SetBlockVisibility flips a block's visibility flag.
// PUT /api/v1/admin/stores/:storeId/layouts/:layoutId/sections/:sectionId/blocks/:blockId/visibility
func (h *LayoutHandler) SetBlockVisibility(c *gin.Context) {
	id, ok := layoutID(c)
	if !ok {
		return
	}

	var req models.SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	block, err := h.layoutService.SetBlockVisibility(c.Param("storeId"), id, c.Param("sectionId"), c.Param("blockId"), *req.Visible)
	if err != nil {
		respondServiceError(c, err, "Failed to set block visibility", map[string]interface{}{
			"store_id":   c.Param("storeId"),
			"layout_id":  id,
			"section_id": c.Param("sectionId"),
			"block_id":   c.Param("blockId"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"block": block})
}
