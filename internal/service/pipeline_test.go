package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xinayida/anti-turing-test/internal/judge"
	"github.com/xinayida/anti-turing-test/internal/llm"
	"github.com/xinayida/anti-turing-test/internal/models"
	"github.com/xinayida/anti-turing-test/internal/repository"
)

// scriptedClient returns one canned reply to every judge call.
type scriptedClient struct {
	reply string
	err   error
}

func (c *scriptedClient) Complete(context.Context, []llm.Message, llm.Options) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func (c *scriptedClient) Close() error { return nil }

func (c *scriptedClient) ModelInfo() map[string]interface{} { return nil }

// brokenStore fails every operation, exercising the fallback path.
type brokenStore struct{}

func (brokenStore) SaveReport(context.Context, *models.AnalysisReport) error {
	return errors.New("connection refused")
}

func (brokenStore) GetReport(context.Context, string) (*models.AnalysisReport, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) ListReports(context.Context, int) ([]*models.AnalysisReport, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) GetStats(context.Context) (*repository.Stats, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Close() error { return nil }

func newTestPipeline(t *testing.T, client llm.Client, store repository.ReportStore) *Pipeline {
	t.Helper()

	logger := zap.NewNop()
	cache := repository.NewMemoryStore(time.Minute, logger)
	t.Cleanup(func() { _ = cache.Close() })

	runner := judge.NewRunner(judge.NewLLMJudge(client, time.Second, logger), logger)
	return NewPipeline(runner, store, cache, logger)
}

func TestPipeline_Analyze(t *testing.T) {
	pipeline := newTestPipeline(t, &scriptedClient{reply: "Score: 0.8\nReads like a person."}, nil)

	req := models.AnalyzeRequest{
		Text:           "Last week I repainted the fence with my neighbor. We argued about the color, laughed about it, and picked the one neither of us wanted.",
		ResponseDelays: []int64{2000, 2200, 2100},
	}

	report, err := pipeline.Analyze(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.NotEmpty(t, report.ID)
	assert.NotEmpty(t, report.SessionID)
	assert.Equal(t, req.Text, report.Text)
	assert.False(t, report.AnalyzedAt.IsZero())

	assert.Greater(t, report.TextStructure.TokenCount, 0)
	assert.Greater(t, report.TextStructure.SentenceCount, 0)

	for _, dim := range models.Dimensions {
		result := report.InnovationFeatures.ByDimension(dim)
		assert.GreaterOrEqual(t, result.Score, 0.0, string(dim))
		assert.LessOrEqual(t, result.Score, 1.0, string(dim))
		assert.NotEmpty(t, result.Analysis, string(dim))
	}

	assert.GreaterOrEqual(t, report.OverallScore, 0.0)
	assert.LessOrEqual(t, report.OverallScore, 1.0)
	assert.Contains(t, []string{models.ClassHuman, models.ClassAI, models.ClassAmbiguous}, report.Classification)

	// the report is retrievable afterwards
	got, err := pipeline.GetReport(context.Background(), report.SessionID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
}

func TestPipeline_Analyze_EmptyText(t *testing.T) {
	pipeline := newTestPipeline(t, &scriptedClient{reply: "Score: 0.8"}, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := pipeline.Analyze(context.Background(), models.AnalyzeRequest{Text: text})
		assert.ErrorIs(t, err, ErrEmptyText)
	}
}

func TestPipeline_Analyze_KeepsCallerSessionID(t *testing.T) {
	pipeline := newTestPipeline(t, &scriptedClient{reply: "Score: 0.5"}, nil)

	report, err := pipeline.Analyze(context.Background(), models.AnalyzeRequest{
		Text:      "An answer tied to an existing session.",
		SessionID: "existing-session",
	})
	require.NoError(t, err)
	assert.Equal(t, "existing-session", report.SessionID)
}

func TestPipeline_Analyze_JudgeFailuresStillProduceFullReport(t *testing.T) {
	pipeline := newTestPipeline(t, &scriptedClient{err: errors.New("provider down")}, nil)

	report, err := pipeline.Analyze(context.Background(), models.AnalyzeRequest{
		Text: "Judges being unreachable must not lose the report.",
	})
	require.NoError(t, err)

	for _, dim := range models.Dimensions {
		result := report.InnovationFeatures.ByDimension(dim)
		if dim == models.TimePerception {
			continue
		}
		assert.InDelta(t, 0.5, result.Score, 1e-9, string(dim))
	}
}

func TestPipeline_BrokenDurableStoreFallsBackToCache(t *testing.T) {
	pipeline := newTestPipeline(t, &scriptedClient{reply: "Score: 0.6"}, brokenStore{})

	report, err := pipeline.Analyze(context.Background(), models.AnalyzeRequest{
		Text: "Storage being down must not fail the analysis.",
	})
	require.NoError(t, err)

	got, err := pipeline.GetReport(context.Background(), report.SessionID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.9, models.ClassHuman},
		{0.7, models.ClassHuman},
		{0.69, models.ClassAmbiguous},
		{0.5, models.ClassAmbiguous},
		{0.31, models.ClassAmbiguous},
		{0.3, models.ClassAI},
		{0.1, models.ClassAI},
		{0.0, models.ClassAI},
		{1.0, models.ClassHuman},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.score), "score %v", tt.score)
	}
}
