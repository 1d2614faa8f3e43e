package syncer

import (
	"context"

	"signyard/pkg/models"

	"go.uber.org/zap"
)

// LogPublisher accepts every deployment and only records it in the log.
// It stands in when no remote sheet is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, deployment models.Deployment) error {
	p.log.Info("Deployment published",
		zap.String("deployment_id", deployment.ID),
		zap.String("event", deployment.Event),
		zap.Int("items", len(deployment.Items)),
	)
	return nil
}

func (p *LogPublisher) Name() string {
	return "log"
}
