package judge

import (
	"context"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xinayida/anti-turing-test/internal/models"
)

// innovationWeights combines the six judge scores. The weights sum to 1.0.
var innovationWeights = map[models.Dimension]float64{
	models.SemanticElasticity:  0.20,
	models.EmotionalExpression: 0.20,
	models.ReferenceAbility:    0.15,
	models.AmbiguityHandling:   0.15,
	models.CreativeThinking:    0.15,
	models.TimePerception:      0.15,
}

// llmDimensions are the five externally judged dimensions; time perception
// is computed locally.
var llmDimensions = []models.Dimension{
	models.SemanticElasticity,
	models.EmotionalExpression,
	models.ReferenceAbility,
	models.AmbiguityHandling,
	models.CreativeThinking,
}

// Runner fans the five LLM judges out concurrently and joins them with the
// local time-perception judge into the innovation-feature aggregate.
type Runner struct {
	judge  *LLMJudge
	logger *zap.Logger
}

// NewRunner creates a runner around the given judge.
func NewRunner(judge *LLMJudge, logger *zap.Logger) *Runner {
	return &Runner{judge: judge, logger: logger}
}

// Run produces all six feature results plus the weighted overall score.
// Each LLM judge converts its own failure to the dimension's fallback, so
// one failing call never aborts the others; the output ordering is fixed by
// dimension, not by completion order.
func (r *Runner) Run(ctx context.Context, text string, delays []int64) models.InnovationFeatures {
	var features models.InnovationFeatures

	results := make([]models.FeatureResult, len(llmDimensions))

	g, gctx := errgroup.WithContext(ctx)
	for i, dim := range llmDimensions {
		i, dim := i, dim
		g.Go(func() error {
			results[i] = r.judge.Judge(gctx, dim, text)
			return nil
		})
	}

	features.TimePerception = TimePerception(text, delays)

	// Judge never returns an error; the join cannot fail.
	_ = g.Wait()

	for i, dim := range llmDimensions {
		features.SetDimension(dim, results[i])
	}

	var overall float64
	for _, dim := range models.Dimensions {
		overall += innovationWeights[dim] * features.ByDimension(dim).Score
	}
	features.OverallScore = math.Max(0, math.Min(1, overall))

	return features
}
