package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migration source
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/xinayida/anti-turing-test/internal/models"
)

// PostgresStore persists reports in PostgreSQL. The nested report sections
// are stored as JSONB alongside the queryable scalar columns.
type PostgresStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPostgresStore connects, pings, and runs the file-based migrations.
func NewPostgresStore(dataSourceName, migrationsPath string, logger *zap.Logger) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := migrateDB(db, migrationsPath); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Report store connected", zap.String("driver", "postgres"))
	return &PostgresStore{db: db, logger: logger}, nil
}

func migrateDB(db *sqlx.DB, migrationsPath string) error {
	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "anti_turing_test", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

type reportRow struct {
	ID             string       `db:"id"`
	SessionID      string       `db:"session_id"`
	Text           string       `db:"text"`
	Structure      []byte       `db:"text_structure"`
	AISimilarity   []byte       `db:"ai_similarity"`
	Innovation     []byte       `db:"innovation_features"`
	OverallScore   float64      `db:"overall_score"`
	Classification string       `db:"classification"`
	AnalyzedAt     sql.NullTime `db:"analyzed_at"`
}

func toRow(report *models.AnalysisReport) (*reportRow, error) {
	structure, err := json.Marshal(report.TextStructure)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal text structure: %w", err)
	}
	aisim, err := json.Marshal(report.AISimilarity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ai similarity: %w", err)
	}
	innovation, err := json.Marshal(report.InnovationFeatures)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal innovation features: %w", err)
	}

	return &reportRow{
		ID:             report.ID,
		SessionID:      report.SessionID,
		Text:           report.Text,
		Structure:      structure,
		AISimilarity:   aisim,
		Innovation:     innovation,
		OverallScore:   report.OverallScore,
		Classification: report.Classification,
	}, nil
}

func (r *reportRow) toReport() (*models.AnalysisReport, error) {
	report := &models.AnalysisReport{
		ID:             r.ID,
		SessionID:      r.SessionID,
		Text:           r.Text,
		OverallScore:   r.OverallScore,
		Classification: r.Classification,
	}
	if r.AnalyzedAt.Valid {
		report.AnalyzedAt = r.AnalyzedAt.Time
	}

	if err := json.Unmarshal(r.Structure, &report.TextStructure); err != nil {
		return nil, fmt.Errorf("failed to unmarshal text structure: %w", err)
	}
	if err := json.Unmarshal(r.AISimilarity, &report.AISimilarity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ai similarity: %w", err)
	}
	if err := json.Unmarshal(r.Innovation, &report.InnovationFeatures); err != nil {
		return nil, fmt.Errorf("failed to unmarshal innovation features: %w", err)
	}
	return report, nil
}

// SaveReport inserts one report.
func (s *PostgresStore) SaveReport(ctx context.Context, report *models.AnalysisReport) error {
	row, err := toRow(report)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reports (id, session_id, text, text_structure, ai_similarity,
		                     innovation_features, overall_score, classification, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		row.ID, row.SessionID, row.Text,
		row.Structure, row.AISimilarity, row.Innovation,
		row.OverallScore, row.Classification, report.AnalyzedAt)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// GetReport returns the most recent report for a session.
func (s *PostgresStore) GetReport(ctx context.Context, sessionID string) (*models.AnalysisReport, error) {
	var row reportRow
	query := `
		SELECT id, session_id, text, text_structure, ai_similarity,
		       innovation_features, overall_score, classification, analyzed_at
		FROM reports
		WHERE session_id = $1
		ORDER BY analyzed_at DESC
		LIMIT 1
	`
	if err := s.db.GetContext(ctx, &row, query, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return row.toReport()
}

// ListReports returns the most recent reports, newest first.
func (s *PostgresStore) ListReports(ctx context.Context, limit int) ([]*models.AnalysisReport, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []reportRow
	query := `
		SELECT id, session_id, text, text_structure, ai_similarity,
		       innovation_features, overall_score, classification, analyzed_at
		FROM reports
		ORDER BY analyzed_at DESC
		LIMIT $1
	`
	if err := s.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*models.AnalysisReport, 0, len(rows))
	for i := range rows {
		report, err := rows[i].toReport()
		if err != nil {
			s.logger.Warn("Skipping undecodable report row",
				zap.String("id", rows[i].ID), zap.Error(err))
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// GetStats summarizes the stored reports.
func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByClass: make(map[string]int)}

	rows, err := s.db.QueryxContext(ctx, `SELECT classification, COUNT(*), COALESCE(AVG(overall_score), 0) FROM reports GROUP BY classification`)
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

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
