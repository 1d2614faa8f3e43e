package googlesheets

import (
	"context"
	"fmt"
	"os"

	"signyard/pkg/models"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

const DefaultRange = "Deployments!A1:M1"

// Publisher appends deployments to a spreadsheet, one row per deployed item.
type Publisher struct {
	sheetsService *sheets.Service
	spreadsheetID string
	writeRange    string
	log           *zap.Logger
}

type Config struct {
	SpreadsheetID   string
	Range           string
	CredentialsJSON string
	// CredentialsFile is read when CredentialsJSON is empty.
	CredentialsFile string
}

func NewPublisher(ctx context.Context, cfg Config, log *zap.Logger) (*Publisher, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	credentialsJSON := []byte(cfg.CredentialsJSON)
	if len(credentialsJSON) == 0 {
		log.Info("Using Google credentials from file", zap.String("path", cfg.CredentialsFile))
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read google credentials file: %w", err)
		}
		credentialsJSON = b
	}

	credentials, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("cannot load google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.New(client)
	if err != nil {
		return nil, fmt.Errorf("cannot create google sheets client: %w", err)
	}

	return NewPublisherWithService(sheetsService, cfg.SpreadsheetID, cfg.Range, log), nil
}

func NewPublisherWithService(service *sheets.Service, spreadsheetID, writeRange string, log *zap.Logger) *Publisher {
	if writeRange == "" {
		writeRange = DefaultRange
	}

	return &Publisher{
		sheetsService: service,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
		log:           log,
	}
}

func (p *Publisher) Publish(ctx context.Context, deployment models.Deployment) error {
	rows := DeploymentRows(deployment)
	if len(rows) == 0 {
		return nil
	}

	_, err := p.sheetsService.Spreadsheets.Values.
		Append(p.spreadsheetID, p.writeRange, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("cannot append deployment %s to sheet: %w", deployment.ID, err)
	}

	p.log.Debug("Deployment appended to sheet", zap.String("deployment_id", deployment.ID), zap.Int("rows", len(rows)))
	return nil
}

func (p *Publisher) Name() string {
	return "google-sheets"
}
