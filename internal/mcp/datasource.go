package mcp

import (
	"context"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
	"github.com/aurelienperez/grease-the-groove/internal/storage"
)

// DataSource abstracts the data layer for MCP tools so handlers stay
// testable without a database.
type DataSource interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	GetExercise(ctx context.Context, id string) (*models.Exercise, error)
	ListLogs(ctx context.Context, exerciseID string) ([]models.LogEntry, error)
	QueryLogs(ctx context.Context, exerciseID string, start, end time.Time) ([]models.LogEntry, error)
	InsertLog(ctx context.Context, l models.LogEntry) error
	GlobalProfile(ctx context.Context) (models.ProgressionProfile, error)
	UpdateGTGState(ctx context.Context, exerciseID string, fn func(models.GTGState) models.GTGState) error
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
