package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type PendingCounter interface {
	CountUnsynced(ctx context.Context) (int, error)
}

type HealthStatus struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	PendingSync *int      `json:"pending_sync,omitempty"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

// HealthChecker serves /health, caching the result for a few seconds so
// probes don't hammer the database.
type HealthChecker struct {
	db            Pinger
	pending       PendingCounter
	version       string
	startTime     time.Time
	cacheDuration time.Duration
	now           func() time.Time

	mu          sync.Mutex
	last        HealthStatus
	lastChecked time.Time
}

func NewHealthChecker(db Pinger, pending PendingCounter, version string) *HealthChecker {
	return &HealthChecker{
		db:            db,
		pending:       pending,
		version:       version,
		startTime:     time.Now(),
		cacheDuration: 5 * time.Second,
		now:           time.Now,
	}
}

func (h *HealthChecker) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", h.Handle)
}

func (h *HealthChecker) Handle(c *gin.Context) {
	status := h.check(c.Request.Context())

	code := http.StatusOK
	if status.Status != StatusOK {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

func (h *HealthChecker) check(ctx context.Context) HealthStatus {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if !h.lastChecked.IsZero() && now.Sub(h.lastChecked) < h.cacheDuration {
		return h.last
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := HealthStatus{
		Status:      StatusOK,
		Database:    StatusOK,
		LastChecked: now,
		Uptime:      now.Sub(h.startTime).Round(time.Second).String(),
		Version:     h.version,
	}

	if err := h.db.PingContext(ctx); err != nil {
		status.Status = StatusDegraded
		status.Database = err.Error()
	} else if h.pending != nil {
		if pending, err := h.pending.CountUnsynced(ctx); err == nil {
			status.PendingSync = &pending
		}
	}

	h.last = status
	h.lastChecked = now
	return status
}
