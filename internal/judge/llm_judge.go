// Package judge implements the six qualitative feature judges and their
// aggregation into the innovation-feature score.
package judge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xinayida/anti-turing-test/internal/llm"
	"github.com/xinayida/anti-turing-test/internal/models"
)

// Sampling configuration for judge calls. Low temperature keeps the scoring
// consistent across requests; the output budget covers a score line plus a
// short analysis.
const (
	judgeTemperature = 0.3
	judgeMaxTokens   = 250
)

// defaultTimeout bounds a single judge call when no timeout is configured.
const defaultTimeout = 30 * time.Second

// LLMJudge scores one qualitative dimension by delegating to the external
// completion service and parsing the reply.
type LLMJudge struct {
	client  llm.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewLLMJudge creates a judge backed by the given completion client.
func NewLLMJudge(client llm.Client, timeout time.Duration, logger *zap.Logger) *LLMJudge {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &LLMJudge{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

// Judge scores the text on one dimension. Any transport or parse failure
// degrades to the dimension's canned fallback; the caller never sees an
// error.
func (j *LLMJudge) Judge(ctx context.Context, dim models.Dimension, text string) models.FeatureResult {
	rubric := RubricFor(dim)

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	reply, err := j.client.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: buildSystemInstruction(rubric)},
		{Role: llm.RoleUser, Content: text},
	}, llm.Options{
		Temperature: judgeTemperature,
		MaxTokens:   judgeMaxTokens,
	})
	if err != nil {
		j.logger.Warn("Judge call failed, using fallback",
			zap.String("dimension", string(dim)),
			zap.Error(err))
		return fallbackResult(dim)
	}

	score, parsed := parseScore(reply)
	if !parsed {
		j.logger.Warn("Judge reply carried no parseable score, defaulting to neutral",
			zap.String("dimension", string(dim)),
			zap.String("reply", truncate(reply, 200)))
	}

	return models.FeatureResult{
		Score:     score,
		Analysis:  strings.TrimSpace(reply),
		HumanVsAI: rubric.Pair,
		Parsed:    parsed,
	}
}

// buildSystemInstruction embeds the dimension rubric into the judging prompt.
func buildSystemInstruction(rubric Rubric) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are evaluating whether a free-text answer was written by a human or generated by an AI, along the dimension %q.\n\n", rubric.Title)

	b.WriteString("A human typically shows:\n")
	for _, item := range rubric.HumanShows {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}

	b.WriteString("\nAn AI typically shows:\n")
	for _, item := range rubric.AIShows {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}

	b.WriteString("\nRate how strongly the answer exhibits the human pattern on this dimension, from 0 (clearly AI-like) to 1 (clearly human-like).\n")
	b.WriteString("Reply with a line \"Score: <number between 0 and 1>\" followed by a brief analysis.")

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
