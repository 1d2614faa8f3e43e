package syncer

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Runner interface {
	SyncNow(ctx context.Context) (Report, error)
	Status(ctx context.Context) (Status, error)
}

type SyncHandler struct {
	runner Runner
}

func NewSyncHandler(r Runner) *SyncHandler {
	return &SyncHandler{runner: r}
}

func (h *SyncHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/sync", h.GetStatus)
	router.POST("/sync", h.Sync)
}

func (h *SyncHandler) GetStatus(c *gin.Context) {
	status, err := h.runner.Status(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to read sync status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *SyncHandler) Sync(c *gin.Context) {
	report, err := h.runner.SyncNow(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Sync failed", "details": err.Error(), "report": report})
		return
	}

	c.JSON(http.StatusOK, report)
}
