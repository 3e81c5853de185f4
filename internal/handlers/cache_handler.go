package handlers

import (
	"net/http"

	"storefront-config-backend/pkg/cache"
	"storefront-config-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CacheHandler struct {
	cache *cache.Cache
}

func NewCacheHandler(c *cache.Cache) *CacheHandler {
	return &CacheHandler{cache: c}
}

// InvalidateStore drops every cached page document for a store. Used after
// bulk imports or when a stale document must go away before its TTL.
// DELETE /api/v1/admin/stores/:storeId/cache
func (h *CacheHandler) InvalidateStore(c *gin.Context) {
	storeID := c.Param("storeId")

	if err := h.cache.InvalidateStore(storeID); err != nil {
		logger.Error(err, "Failed to invalidate store cache", map[string]interface{}{
			"store_id": storeID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate cache"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cache invalidated"})
}
