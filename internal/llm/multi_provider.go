package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// MultiProviderClient fans requests to an ordered list of providers,
// switching to the next one after repeated failures or a rate-limit error.
type MultiProviderClient struct {
	providers    []Client
	currentIndex int
	mu           sync.RWMutex
	logger       *zap.Logger
	failureCount map[int]int
	maxFailures  int
}

// NewMultiProviderClient wraps the given providers. maxFailures is the
// number of consecutive failures tolerated before switching provider.
func NewMultiProviderClient(providers []Client, maxFailures int, logger *zap.Logger) (*MultiProviderClient, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}
	if maxFailures == 0 {
		maxFailures = 3
	}

	return &MultiProviderClient{
		providers:    providers,
		logger:       logger,
		failureCount: make(map[int]int),
		maxFailures:  maxFailures,
	}, nil
}

func (c *MultiProviderClient) current() (Client, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.providers[c.currentIndex], c.currentIndex
}

func (c *MultiProviderClient) switchToNext() {
	c.mu.Lock()
	defer c.mu.Unlock()

	oldIndex := c.currentIndex
	c.currentIndex = (c.currentIndex + 1) % len(c.providers)

	c.logger.Info("Switching completion provider",
		zap.Int("from_index", oldIndex),
		zap.Int("to_index", c.currentIndex))
}

// recordFailure returns true when the provider hit its failure budget.
func (c *MultiProviderClient) recordFailure(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failureCount[index]++
	if c.failureCount[index] >= c.maxFailures {
		c.logger.Warn("Provider reached max failures",
			zap.Int("provider_index", index),
			zap.Int("failures", c.failureCount[index]))
		return true
	}
	return false
}

func (c *MultiProviderClient) resetFailures(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failureCount[index] = 0
}

// Complete tries the current provider and falls through the rest on failure.
func (c *MultiProviderClient) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	var lastErr error

	for attempts := 0; attempts < len(c.providers); attempts++ {
		provider, index := c.current()

		reply, err := provider.Complete(ctx, messages, opts)
		if err == nil {
			c.resetFailures(index)
			return reply, nil
		}
		lastErr = err

		c.logger.Warn("Completion provider failed",
			zap.Int("provider_index", index),
			zap.Error(err))

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if c.recordFailure(index) || isRateLimitError(err) {
			c.switchToNext()
		}
	}

	return "", fmt.Errorf("all providers failed: %w", lastErr)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit")
}

// Close closes all providers.
func (c *MultiProviderClient) Close() error {
	var lastErr error
	for i, provider := range c.providers {
		if err := provider.Close(); err != nil {
			c.logger.Error("Failed to close provider",
				zap.Int("index", i),
				zap.Error(err))
			lastErr = err
		}
	}
	return lastErr
}

// ModelInfo reports the current provider's info.
func (c *MultiProviderClient) ModelInfo() map[string]interface{} {
	provider, index := c.current()
	info := provider.ModelInfo()
	info["provider_index"] = index
	info["total_providers"] = len(c.providers)
	return info
}
