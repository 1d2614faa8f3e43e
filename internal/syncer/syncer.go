// Package syncer pushes locally saved deployments to a remote publisher
// and flags them as synced once the remote has accepted them.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"signyard/internal/repository"
	"signyard/pkg/models"

	"go.uber.org/zap"
)

const DefaultInterval = 5 * time.Minute

type Publisher interface {
	Publish(ctx context.Context, deployment models.Deployment) error
	Name() string
}

type DeploymentSource interface {
	GetDeployments(ctx context.Context, conditions repository.QueryBuilder) ([]models.Deployment, error)
	MarkSynced(ctx context.Context, id string, version int) (bool, error)
	CountUnsynced(ctx context.Context) (int, error)
}

// Report describes one pass. Changed lists deployments replaced while they
// were being published; they stay pending for the next pass.
type Report struct {
	Attempted int      `json:"attempted"`
	Synced    []string `json:"synced"`
	Changed   []string `json:"changed,omitempty"`
	Failed    string   `json:"failed,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type Status struct {
	Publisher string     `json:"publisher"`
	Pending   int        `json:"pending"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

type Syncer struct {
	source    DeploymentSource
	publisher Publisher
	interval  time.Duration
	log       *zap.Logger
	trigger   chan struct{}

	// mu serialises passes so a deployment is never published twice concurrently.
	mu sync.Mutex

	statusMu  sync.Mutex
	lastRun   time.Time
	lastError string
}

func New(source DeploymentSource, publisher Publisher, interval time.Duration, log *zap.Logger) *Syncer {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Syncer{
		source:    source,
		publisher: publisher,
		interval:  interval,
		log:       log,
		trigger:   make(chan struct{}, 1),
	}
}

// Run syncs on every tick and on Trigger until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	s.log.Info("Sync worker started", zap.String("publisher", s.publisher.Name()), zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sync worker stopped")
			return
		case <-ticker.C:
		case <-s.trigger:
		}

		if _, err := s.SyncNow(ctx); err != nil && ctx.Err() == nil {
			s.log.Warn("Sync pass failed", zap.Error(err))
		}
	}
}

// Trigger asks the worker for a pass without waiting for it.
func (s *Syncer) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// SyncNow publishes unsynced deployments one by one in deployment date
// order. The pass stops at the first failure so later deployments never
// overtake an earlier one.
func (s *Syncer) SyncNow(ctx context.Context) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := Report{Synced: []string{}}
	err := s.pass(ctx, &report)
	if err != nil {
		report.Error = err.Error()
	}

	s.statusMu.Lock()
	s.lastRun = time.Now()
	s.lastError = report.Error
	s.statusMu.Unlock()

	return report, err
}

func (s *Syncer) pass(ctx context.Context, report *Report) error {
	qb := repository.NewQueryBuilder()
	qb.AddCondition("synced", false)

	pending, err := s.source.GetDeployments(ctx, qb)
	if err != nil {
		return fmt.Errorf("load unsynced deployments: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	s.log.Info("Syncing deployments", zap.Int("pending", len(pending)))

	for _, deployment := range pending {
		report.Attempted++

		if err := s.publisher.Publish(ctx, deployment); err != nil {
			report.Failed = deployment.ID
			return fmt.Errorf("publish deployment %s: %w", deployment.ID, err)
		}
		marked, err := s.source.MarkSynced(ctx, deployment.ID, deployment.Version)
		if err != nil {
			report.Failed = deployment.ID
			return err
		}
		if !marked {
			s.log.Info("Deployment changed during publish, keeping it pending",
				zap.String("id", deployment.ID), zap.Int("published_version", deployment.Version))
			report.Changed = append(report.Changed, deployment.ID)
			continue
		}

		report.Synced = append(report.Synced, deployment.ID)
	}

	s.log.Info("Sync complete", zap.Int("synced", len(report.Synced)))
	return nil
}

func (s *Syncer) Status(ctx context.Context) (Status, error) {
	pending, err := s.source.CountUnsynced(ctx)
	if err != nil {
		return Status{}, err
	}

	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	status := Status{
		Publisher: s.publisher.Name(),
		Pending:   pending,
		LastError: s.lastError,
	}
	if !s.lastRun.IsZero() {
		lastRun := s.lastRun
		status.LastRun = &lastRun
	}

	return status, nil
}
