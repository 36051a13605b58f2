package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // cgo-free SQLite driver

	"github.com/xinayida/anti-turing-test/internal/models"
)

// SQLiteStore persists reports in a local SQLite file. Used for single-node
// deployments and development; schema is migrated inline on open.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens the database file and creates the schema.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db, logger: logger}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Report store opened", zap.String("driver", "sqlite"), zap.String("db_path", dbPath))
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		text TEXT NOT NULL,
		text_structure TEXT NOT NULL,
		ai_similarity TEXT NOT NULL,
		innovation_features TEXT NOT NULL,
		overall_score REAL NOT NULL,
		classification TEXT NOT NULL,
		analyzed_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_session_id ON reports(session_id);
	CREATE INDEX IF NOT EXISTS idx_reports_analyzed_at ON reports(analyzed_at);
	CREATE INDEX IF NOT EXISTS idx_reports_classification ON reports(classification);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveReport inserts one report.
func (s *SQLiteStore) SaveReport(ctx context.Context, report *models.AnalysisReport) error {
	row, err := toRow(report)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reports (id, session_id, text, text_structure, ai_similarity,
		                     innovation_features, overall_score, classification, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		row.ID, row.SessionID, row.Text,
		string(row.Structure), string(row.AISimilarity), string(row.Innovation),
		row.OverallScore, row.Classification, report.AnalyzedAt)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (s *SQLiteStore) scanReport(scan func(dest ...interface{}) error) (*models.AnalysisReport, error) {
	var (
		report     models.AnalysisReport
		structure  string
		aisim      string
		innovation string
	)
	err := scan(&report.ID, &report.SessionID, &report.Text,
		&structure, &aisim, &innovation,
		&report.OverallScore, &report.Classification, &report.AnalyzedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(structure), &report.TextStructure); err != nil {
		return nil, fmt.Errorf("failed to unmarshal text structure: %w", err)
	}
	if err := json.Unmarshal([]byte(aisim), &report.AISimilarity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ai similarity: %w", err)
	}
	if err := json.Unmarshal([]byte(innovation), &report.InnovationFeatures); err != nil {
		return nil, fmt.Errorf("failed to unmarshal innovation features: %w", err)
	}
	return &report, nil
}

// GetReport returns the most recent report for a session.
func (s *SQLiteStore) GetReport(ctx context.Context, sessionID string) (*models.AnalysisReport, error) {
	query := `
		SELECT id, session_id, text, text_structure, ai_similarity,
		       innovation_features, overall_score, classification, analyzed_at
		FROM reports
		WHERE session_id = ?
		ORDER BY analyzed_at DESC
		LIMIT 1
	`
	row := s.db.QueryRowContext(ctx, query, sessionID)
	report, err := s.scanReport(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}

// ListReports returns the most recent reports, newest first.
func (s *SQLiteStore) ListReports(ctx context.Context, limit int) ([]*models.AnalysisReport, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, session_id, text, text_structure, ai_similarity,
		       innovation_features, overall_score, classification, analyzed_at
		FROM reports
		ORDER BY analyzed_at DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.AnalysisReport
	for rows.Next() {
		report, err := s.scanReport(rows.Scan)
		if err != nil {
			s.logger.Warn("Skipping undecodable report row", zap.Error(err))
			continue
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}
	return reports, nil
}

// GetStats summarizes the stored reports.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByClass: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx, `SELECT classification, COUNT(*), COALESCE(AVG(overall_score), 0) FROM reports GROUP BY classification`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	var weightedSum float64
	for rows.Next() {
		var class string
		var count int
		var avg float64
		if err := rows.Scan(&class, &count, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats.ByClass[class] = count
		stats.Total += count
		weightedSum += avg * float64(count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stats rows: %w", err)
	}

	if stats.Total > 0 {
		stats.AverageScore = weightedSum / float64(stats.Total)
	}
	return stats, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
