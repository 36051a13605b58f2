// Package repository persists analysis reports. The pipeline treats storage
// as fire-and-forget: a store failure is recovered by the in-memory fallback
// and never blocks report generation.
package repository

import (
	"context"
	"errors"

	"github.com/xinayida/anti-turing-test/internal/models"
)

// ErrNotFound signals that no report exists for the requested session.
var ErrNotFound = errors.New("report not found")

// Stats summarizes the stored reports.
type Stats struct {
	Total        int            `json:"total"`
	ByClass      map[string]int `json:"by_classification"`
	AverageScore float64        `json:"average_score"`
}

// ReportStore is implemented by the Postgres, SQLite and in-memory stores.
type ReportStore interface {
	SaveReport(ctx context.Context, report *models.AnalysisReport) error
	GetReport(ctx context.Context, sessionID string) (*models.AnalysisReport, error)
	ListReports(ctx context.Context, limit int) ([]*models.AnalysisReport, error)
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}
