package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		want   float64
		parsed bool
	}{
		{"plain score line", "Score: 0.85\nThe answer drifts naturally.", 0.85, true},
		{"lowercase no space", "score:0.7", 0.7, true},
		{"mid-text", "Overall I would give this a score: 0.4 because...", 0.4, true},
		{"leading dot", "Score: .6", 0.6, true},
		{"integer", "Score: 1", 1, true},
		{"fullwidth colon", "Score： 0.35", 0.35, true},
		{"clamped above one", "Score: 1.5", 1, true},
		{"no score at all", "The answer seems quite human to me.", 0.5, false},
		{"empty reply", "", 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, parsed := parseScore(tt.reply)
			assert.Equal(t, tt.parsed, parsed)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
