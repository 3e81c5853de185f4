package handlers

import (
	"errors"
	"net/http"

	"storefront-config-backend/internal/service"
	"storefront-config-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates service sentinel errors into HTTP responses.
// Anything unrecognized is a 500 and gets logged; expected errors are not.
func respondServiceError(c *gin.Context, err error, msg string, fields map[string]interface{}) {
	switch {
	case errors.Is(err, service.ErrLayoutNotFound),
		errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrBlockNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrWidgetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidPageType),
		errors.Is(err, service.ErrInvalidSectionType),
		errors.Is(err, service.ErrInvalidBlockType),
		errors.Is(err, service.ErrInvalidTemplateType),
		errors.Is(err, service.ErrInvalidWidgetType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSectionLocked),
		errors.Is(err, service.ErrLayoutExists),
		errors.Is(err, service.ErrTemplateExists),
		errors.Is(err, service.ErrLayoutNotDraft):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCustomCSS),
		errors.Is(err, service.ErrInvalidThemeColor):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(err, msg, fields)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
