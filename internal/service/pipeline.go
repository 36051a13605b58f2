// Package service orchestrates the scoring pipeline: structural analysis,
// the statistical AI-similarity scorers, the six qualitative judges, and the
// composite classification.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xinayida/anti-turing-test/internal/aisim"
	"github.com/xinayida/anti-turing-test/internal/judge"
	"github.com/xinayida/anti-turing-test/internal/models"
	"github.com/xinayida/anti-turing-test/internal/repository"
	"github.com/xinayida/anti-turing-test/internal/textproc"
)

// ErrEmptyText rejects empty or whitespace-only answers before the pipeline
// is invoked.
var ErrEmptyText = errors.New("text must not be empty")

// Composite weights and classification thresholds. Values at the thresholds
// are classified inclusively: exactly 0.7 is Human, exactly 0.3 is AI.
const (
	aiSimilarityWeight = 0.4
	innovationWeight   = 0.6

	humanThreshold = 0.7
	aiThreshold    = 0.3
)

// Pipeline runs one scoring pass per analyze request. It holds no mutable
// per-request state; concurrent requests share only the stores.
type Pipeline struct {
	judges *judge.Runner
	store  repository.ReportStore // durable store, may be nil
	cache  repository.ReportStore // in-memory fallback, never nil
	logger *zap.Logger
}

// NewPipeline creates the pipeline. store may be nil when no durable store
// is configured; cache is required.
func NewPipeline(judges *judge.Runner, store, cache repository.ReportStore, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		judges: judges,
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Analyze scores one answer and returns the fully populated report. The
// caller receives either a complete report or an error, never a partial
// report; missing qualitative judges are replaced by fallback results inside
// the runner, never omitted.
func (p *Pipeline) Analyze(ctx context.Context, req models.AnalyzeRequest) (report *models.AnalysisReport, err error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}

	// Unexpected faults in the scorers surface as a generic pipeline
	// failure rather than a partial report.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Scoring pipeline panicked", zap.Any("panic", r))
			report = nil
			err = fmt.Errorf("analysis pipeline failed: %v", r)
		}
	}()

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	structure := textproc.AnalyzeStructure(req.Text)
	similarity := aisim.Analyze(req.Text)
	innovation := p.judges.Run(ctx, req.Text, req.ResponseDelays)

	overall := clamp(aiSimilarityWeight*similarity.OverallScore + innovationWeight*innovation.OverallScore)

	report = &models.AnalysisReport{
		ID:                 uuid.New().String(),
		SessionID:          sessionID,
		Text:               req.Text,
		TextStructure:      structure,
		AISimilarity:       similarity,
		InnovationFeatures: innovation,
		OverallScore:       overall,
		Classification:     classify(overall),
		AnalyzedAt:         time.Now().UTC(),
	}

	p.persist(ctx, report)

	p.logger.Info("Answer analyzed",
		zap.String("session_id", sessionID),
		zap.Float64("score", overall),
		zap.String("classification", report.Classification))

	return report, nil
}

// persist is fire-and-forget: a durable-store failure degrades to the
// in-memory cache and never fails the request.
func (p *Pipeline) persist(ctx context.Context, report *models.AnalysisReport) {
	if p.store != nil {
		if err := p.store.SaveReport(ctx, report); err == nil {
			return
		} else {
			p.logger.Warn("Durable store rejected report, falling back to memory",
				zap.String("session_id", report.SessionID),
				zap.Error(err))
		}
	}

	if err := p.cache.SaveReport(ctx, report); err != nil {
		p.logger.Warn("Fallback store rejected report",
			zap.String("session_id", report.SessionID),
			zap.Error(err))
	}
}

// GetReport reads from the durable store first, then the fallback cache.
func (p *Pipeline) GetReport(ctx context.Context, sessionID string) (*models.AnalysisReport, error) {
	if p.store != nil {
		report, err := p.store.GetReport(ctx, sessionID)
		if err == nil {
			return report, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			p.logger.Warn("Durable store read failed, trying fallback",
				zap.String("session_id", sessionID),
				zap.Error(err))
		}
	}
	return p.cache.GetReport(ctx, sessionID)
}

// ListReports returns recent reports from whichever store answers.
func (p *Pipeline) ListReports(ctx context.Context, limit int) ([]*models.AnalysisReport, error) {
	if p.store != nil {
		reports, err := p.store.ListReports(ctx, limit)
		if err == nil {
			return reports, nil
		}
		p.logger.Warn("Durable store list failed, trying fallback", zap.Error(err))
	}
	return p.cache.ListReports(ctx, limit)
}

// GetStats summarizes stored reports.
func (p *Pipeline) GetStats(ctx context.Context) (*repository.Stats, error) {
	if p.store != nil {
		stats, err := p.store.GetStats(ctx)
		if err == nil {
			return stats, nil
		}
		p.logger.Warn("Durable store stats failed, trying fallback", zap.Error(err))
	}
	return p.cache.GetStats(ctx)
}

// classify buckets the composite score. Strictly between the thresholds is
// Ambiguous; the thresholds themselves are not.
func classify(score float64) string {
	switch {
	case score >= humanThreshold:
		return models.ClassHuman
	case score <= aiThreshold:
		return models.ClassAI
	default:
		return models.ClassAmbiguous
	}
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
