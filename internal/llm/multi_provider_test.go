package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Complete(context.Context, []Message, Options) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) Close() error { return nil }

func (f *fakeProvider) ModelInfo() map[string]interface{} {
	return map[string]interface{}{"name": f.name}
}

func TestNewMultiProviderClient_RequiresProviders(t *testing.T) {
	_, err := NewMultiProviderClient(nil, 3, zap.NewNop())
	assert.Error(t, err)
}

func TestMultiProviderClient_UsesCurrentProvider(t *testing.T) {
	primary := &fakeProvider{name: "primary", reply: "ok"}
	secondary := &fakeProvider{name: "secondary", reply: "fallback"}

	client, err := NewMultiProviderClient([]Client{primary, secondary}, 3, zap.NewNop())
	require.NoError(t, err)

	reply, err := client.Complete(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Zero(t, secondary.calls)
}

func TestMultiProviderClient_SwitchesOnRateLimit(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("status 429: rate limit exceeded")}
	secondary := &fakeProvider{name: "secondary", reply: "fallback"}

	client, err := NewMultiProviderClient([]Client{primary, secondary}, 3, zap.NewNop())
	require.NoError(t, err)

	reply, err := client.Complete(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "fallback", reply)
	assert.Equal(t, 1, primary.calls)

	// the switch is sticky: the next call starts on the fallback provider
	_, err = client.Complete(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
}

func TestMultiProviderClient_AllProvidersFailing(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("quota exhausted")}
	second := &fakeProvider{name: "second", err: errors.New("connection refused")}

	client, err := NewMultiProviderClient([]Client{first, second}, 3, zap.NewNop())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all providers failed")
}

func TestMultiProviderClient_SwitchesAfterFailureBudget(t *testing.T) {
	flaky := &fakeProvider{name: "flaky", err: errors.New("transient")}
	backup := &fakeProvider{name: "backup", reply: "ok"}

	client, err := NewMultiProviderClient([]Client{flaky, backup}, 1, zap.NewNop())
	require.NoError(t, err)

	// the single allowed failure exhausts the budget and the same call
	// retries on the backup
	reply, err := client.Complete(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, 1, flaky.calls)
	assert.Equal(t, 1, backup.calls)
}

func TestMultiProviderClient_ModelInfo(t *testing.T) {
	client, err := NewMultiProviderClient([]Client{
		&fakeProvider{name: "only"},
	}, 3, zap.NewNop())
	require.NoError(t, err)

	info := client.ModelInfo()
	assert.Equal(t, "only", info["name"])
	assert.Equal(t, 0, info["provider_index"])
	assert.Equal(t, 1, info["total_providers"])
}

func TestIsRateLimitError(t *testing.T) {
	assert.True(t, isRateLimitError(errors.New("HTTP 429")))
	assert.True(t, isRateLimitError(errors.New("daily quota reached")))
	assert.True(t, isRateLimitError(errors.New("rate limit hit")))
	assert.False(t, isRateLimitError(errors.New("connection reset")))
	assert.False(t, isRateLimitError(nil))
}
