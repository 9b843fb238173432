package handler

import (
	"context"
	"errors"
	"net/http"

	"hijabstyles/catalog-service/internal/app/catalog/entity"
	"hijabstyles/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
)

type CatalogServiceInterface interface {
	GetAllStyles(ctx context.Context) ([]entity.Style, error)
	GetStyle(ctx context.Context, id string) (*entity.Style, error)
}

type StyleHandler struct {
	catalogService CatalogServiceInterface
}

func NewStyleHandler(catalogService CatalogServiceInterface) *StyleHandler {
	return &StyleHandler{catalogService: catalogService}
}

// GetStyles отдаёт все стили каталога, новые первыми
func (h *StyleHandler) GetStyles(c *gin.Context) {
	styles, err := h.catalogService.GetAllStyles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get styles"})
		return
	}

	c.JSON(http.StatusOK, entity.StyleListResponse{
		Styles: styles,
		Total:  len(styles),
	})
}

// GetStyle отдаёт один стиль вместе с его сводкой рейтинга
func (h *StyleHandler) GetStyle(c *gin.Context) {
	styleID := c.Param("style_id")
	if styleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Style ID is required"})
		return
	}

	style, err := h.catalogService.GetStyle(c.Request.Context(), styleID)
	if err != nil {
		if errors.Is(err, service.ErrStyleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Style not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get style"})
		return
	}

	c.JSON(http.StatusOK, style)
}
