package storage

import (
	"context"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
)

// PredictionStorage interface for persisting prediction outcomes
type PredictionStorage interface {
	// SaveBatch upserts predictions for the given matches.
	// Per-record failures are collected in the result, never abort the batch.
	SaveBatch(ctx context.Context, matches []models.Match) models.SaveResult

	// Stats aggregates accuracy statistics for the period (today|week|month|all)
	Stats(ctx context.Context, period string) (models.StatsResponse, error)

	// Close closes the database connection
	Close() error
}
