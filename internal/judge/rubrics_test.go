package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xinayida/anti-turing-test/internal/models"
)

func TestRubricFor(t *testing.T) {
	for _, dim := range models.Dimensions {
		rubric := RubricFor(dim)
		assert.NotEmpty(t, rubric.Title, string(dim))
		assert.NotEmpty(t, rubric.HumanShows, string(dim))
		assert.NotEmpty(t, rubric.AIShows, string(dim))
		assert.NotEmpty(t, rubric.Pair.Human, string(dim))
		assert.NotEmpty(t, rubric.Pair.AI, string(dim))
	}
}

func TestFallbackResult(t *testing.T) {
	result := fallbackResult(models.CreativeThinking)
	assert.Equal(t, 0.5, result.Score)
	assert.Equal(t, "Error analyzing Creative Thinking", result.Analysis)
	assert.False(t, result.Parsed)
}
