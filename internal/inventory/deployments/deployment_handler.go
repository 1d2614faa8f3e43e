package deployments

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"signyard/pkg/models"

	"github.com/gin-gonic/gin"
)

type DeploymentManager interface {
	List(ctx context.Context, synced *bool) ([]models.Deployment, error)
	Get(ctx context.Context, id string) (*models.Deployment, error)
	Create(ctx context.Context, req DeploymentRequest) (*SaveResult, error)
	Update(ctx context.Context, id string, req DeploymentRequest) (*SaveResult, error)
}

type DeploymentHandler struct {
	service DeploymentManager
}

func NewDeploymentHandler(s DeploymentManager) *DeploymentHandler {
	if err := RegisterValidators(); err != nil {
		panic(err)
	}

	return &DeploymentHandler{
		service: s,
	}
}

func (h *DeploymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/deployments", h.GetDeployments)
	router.GET("/deployments/:id", h.GetDeployment)
	router.POST("/deployments", h.CreateDeployment)
	router.PUT("/deployments/:id", h.UpdateDeployment)
}

func (h *DeploymentHandler) GetDeployments(c *gin.Context) {
	var synced *bool
	if raw := c.Query("synced"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid synced parameter", "details": err.Error()})
			return
		}
		synced = &value
	}

	deployments, err := h.service.List(c.Request.Context(), synced)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deployments", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, deployments)
}

func (h *DeploymentHandler) GetDeployment(c *gin.Context) {
	deployment, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to fetch deployment")
		return
	}

	c.JSON(http.StatusOK, deployment)
}

func (h *DeploymentHandler) CreateDeployment(c *gin.Context) {
	var req DeploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to create deployment")
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *DeploymentHandler) UpdateDeployment(c *gin.Context) {
	var req DeploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update deployment")
		return
	}

	c.JSON(http.StatusOK, result)
}

func respondWithError(c *gin.Context, err error, message string) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid deployment", "details": validationErr.Problems})
	case errors.Is(err, ErrDeploymentNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Deployment not found", "details": err.Error()})
	case errors.Is(err, ErrDuplicateDeployment):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Deployment already exists", "details": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
	}
}
