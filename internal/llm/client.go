// Package llm defines the text-completion client contract shared by all
// providers, plus the rate-limiting and failover wrappers around it.
package llm

import "context"

// Message roles understood by every provider.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged entry of a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options is the sampling configuration for one completion request.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Client is implemented by every completion provider. Complete returns the
// reply message's raw text content; callers own all parsing.
type Client interface {
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
	Close() error
	ModelInfo() map[string]interface{}
}
