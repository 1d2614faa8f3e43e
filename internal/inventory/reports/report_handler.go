package reports

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"signyard/internal/inventory/deployments"
	"signyard/internal/inventory/reconcile"
	"signyard/pkg/models"

	"github.com/gin-gonic/gin"
)

const monthLayout = "2006-01"

type ReportProvider interface {
	YardInventory(ctx context.Context) (reconcile.YardInventoryData, error)
	TotalInventory(ctx context.Context) ([]reconcile.TotalInventoryEntry, error)
	DailyStatus(ctx context.Context, date time.Time) (reconcile.DailyInventoryStatus, error)
	Calendar(ctx context.Context, year int, month time.Month) (map[string]reconcile.DailyInventoryStatus, error)
	Invoice(ctx context.Context, deploymentID string) (*InvoiceReport, error)
}

type ReportHandler struct {
	service ReportProvider
	now     func() time.Time
}

func NewReportHandler(s ReportProvider) *ReportHandler {
	return &ReportHandler{
		service: s,
		now:     time.Now,
	}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/inventory/yards", h.GetYardInventory)
	router.GET("/inventory/yards.csv", h.ExportYardInventory)
	router.GET("/inventory/total", h.GetTotalInventory)
	router.GET("/inventory/total.csv", h.ExportTotalInventory)
	router.GET("/inventory/status", h.GetDailyStatus)
	router.GET("/inventory/calendar", h.GetCalendar)
	router.GET("/deployments/:id/invoice", h.GetInvoice)
}

func (h *ReportHandler) GetYardInventory(c *gin.Context) {
	data, err := h.service.YardInventory(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute yard inventory", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *ReportHandler) ExportYardInventory(c *gin.Context) {
	data, err := h.service.YardInventory(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute yard inventory", "details": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := WriteYardInventoryCSV(&buf, data); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to export yard inventory", "details": err.Error()})
		return
	}

	h.sendCSV(c, exportFilename("yard_inventory", h.now()), buf.Bytes())
}

func (h *ReportHandler) GetTotalInventory(c *gin.Context) {
	entries, err := h.service.TotalInventory(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute total inventory", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *ReportHandler) ExportTotalInventory(c *gin.Context) {
	entries, err := h.service.TotalInventory(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute total inventory", "details": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := WriteTotalInventoryCSV(&buf, entries); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to export total inventory", "details": err.Error()})
		return
	}

	h.sendCSV(c, exportFilename("total_inventory", h.now()), buf.Bytes())
}

// GetDailyStatus classifies stock health on ?date=YYYY-MM-DD, today when omitted.
func (h *ReportHandler) GetDailyStatus(c *gin.Context) {
	date := h.now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid date parameter, expected YYYY-MM-DD", "details": err.Error()})
			return
		}
		date = parsed
	}

	status, err := h.service.DailyStatus(c.Request.Context(), date)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute daily status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":           date.Format(models.DateLayout),
		"status":         status.Status,
		"critical_items": status.CriticalItems,
	})
}

func (h *ReportHandler) GetCalendar(c *gin.Context) {
	month := h.now()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse(monthLayout, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid month parameter, expected YYYY-MM", "details": err.Error()})
			return
		}
		month = parsed
	}

	days, err := h.service.Calendar(c.Request.Context(), month.Year(), month.Month())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute calendar", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month": month.Format(monthLayout),
		"days":  days,
	})
}

func (h *ReportHandler) GetInvoice(c *gin.Context) {
	report, err := h.service.Invoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, deployments.ErrDeploymentNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Deployment not found", "details": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute invoice", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) sendCSV(c *gin.Context, filename string, content []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}
