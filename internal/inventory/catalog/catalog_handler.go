package catalog

import (
	"context"
	"net/http"

	"signyard/pkg/models"

	"github.com/gin-gonic/gin"
)

type CatalogReader interface {
	GetCatalog(ctx context.Context) ([]models.InventoryItem, error)
}

type CatalogHandler struct {
	repository CatalogReader
}

func NewCatalogHandler(r CatalogReader) *CatalogHandler {
	return &CatalogHandler{
		repository: r,
	}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/catalog", h.GetCatalog)
}

func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	items, err := h.repository.GetCatalog(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch catalog", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}
