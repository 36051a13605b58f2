package judge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xinayida/anti-turing-test/internal/llm"
	"github.com/xinayida/anti-turing-test/internal/models"
)

// stubClient is a canned completion client. When failOn is non-empty, calls
// whose system instruction contains it return an error instead.
type stubClient struct {
	reply  string
	failOn string
}

func (s *stubClient) Complete(_ context.Context, messages []llm.Message, _ llm.Options) (string, error) {
	if s.failOn != "" && len(messages) > 0 && strings.Contains(messages[0].Content, s.failOn) {
		return "", errors.New("provider unavailable")
	}
	return s.reply, nil
}

func (s *stubClient) Close() error { return nil }

func (s *stubClient) ModelInfo() map[string]interface{} {
	return map[string]interface{}{"provider": "stub"}
}

func newTestRunner(client llm.Client) *Runner {
	return NewRunner(NewLLMJudge(client, 0, zap.NewNop()), zap.NewNop())
}

func TestRunner_Run(t *testing.T) {
	runner := newTestRunner(&stubClient{reply: "Score: 0.9\nReads like lived experience."})

	features := runner.Run(context.Background(), "A plain answer about gardens.", nil)

	for _, dim := range llmDimensions {
		result := features.ByDimension(dim)
		assert.InDelta(t, 0.9, result.Score, 1e-9, string(dim))
		assert.True(t, result.Parsed, string(dim))
	}
	// no delay samples: average 0 reads as implausibly fast
	assert.InDelta(t, 0.3, features.TimePerception.Score, 1e-9)

	// 0.2*0.9 + 0.2*0.9 + 3*0.15*0.9 + 0.15*0.3
	assert.InDelta(t, 0.81, features.OverallScore, 1e-9)
}

func TestRunner_FailingJudgeIsIsolated(t *testing.T) {
	runner := newTestRunner(&stubClient{
		reply:  "Score: 0.9\nReads like lived experience.",
		failOn: "Reference Ability",
	})

	features := runner.Run(context.Background(), "A plain answer about gardens.", nil)

	reference := features.ByDimension(models.ReferenceAbility)
	assert.InDelta(t, 0.5, reference.Score, 1e-9)
	assert.Equal(t, "Error analyzing Reference Ability", reference.Analysis)
	assert.False(t, reference.Parsed)

	for _, dim := range llmDimensions {
		if dim == models.ReferenceAbility {
			continue
		}
		assert.InDelta(t, 0.9, features.ByDimension(dim).Score, 1e-9, string(dim))
	}

	// 0.2*0.9 + 0.2*0.9 + 0.15*0.5 + 2*0.15*0.9 + 0.15*0.3
	assert.InDelta(t, 0.75, features.OverallScore, 1e-9)
}

func TestRunner_AllJudgesFailing(t *testing.T) {
	runner := newTestRunner(&stubClient{failOn: "dimension"})

	features := runner.Run(context.Background(), "Anything at all.", nil)

	for _, dim := range llmDimensions {
		result := features.ByDimension(dim)
		assert.InDelta(t, 0.5, result.Score, 1e-9, string(dim))
		assert.NotEmpty(t, result.Analysis, string(dim))
	}
	assert.InDelta(t, 0.3, features.TimePerception.Score, 1e-9)

	// 0.85*0.5 + 0.15*0.3
	assert.InDelta(t, 0.47, features.OverallScore, 1e-9)
}

func TestRunner_UnparseableReplyDefaultsNeutral(t *testing.T) {
	runner := newTestRunner(&stubClient{reply: "This answer feels quite human to me."})

	features := runner.Run(context.Background(), "Anything at all.", nil)

	for _, dim := range llmDimensions {
		result := features.ByDimension(dim)
		assert.InDelta(t, 0.5, result.Score, 1e-9, string(dim))
		assert.False(t, result.Parsed, string(dim))
		assert.Equal(t, "This answer feels quite human to me.", result.Analysis)
	}
}

func TestBuildSystemInstruction(t *testing.T) {
	for _, dim := range llmDimensions {
		prompt := buildSystemInstruction(rubrics[dim])
		require.Contains(t, prompt, rubrics[dim].Title)
		require.Contains(t, prompt, `"Score: <number between 0 and 1>"`)
	}
}
