package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAlwaysRegistersMock(t *testing.T) {
	r := NewRegistry(context.Background(), Credentials{})
	assert.Equal(t, []string{"mock"}, r.Available())
	assert.Equal(t, "mock", r.Active())
}

func TestRegistryActiveFallsBackToMockWhenUnconfigured(t *testing.T) {
	// openai is requested but has no key, so it is never registered
	r := NewRegistry(context.Background(), Credentials{
		AIMLAPIKey:     "k",
		ActiveProvider: "openai",
	})
	assert.Equal(t, "mock", r.Active())
}

func TestRegistryHonorsConfiguredActive(t *testing.T) {
	r := NewRegistry(context.Background(), Credentials{
		AIMLAPIKey:     "k",
		ActiveProvider: "aimlapi",
	})
	assert.Equal(t, "aimlapi", r.Active())

	p, ok := r.ActiveProvider()
	require.True(t, ok)
	assert.Equal(t, "aimlapi", p.Name())
}

func TestRegistryFallbackOrderIsDeterministic(t *testing.T) {
	r := NewRegistry(context.Background(), Credentials{
		OpenAIKey:      "k1",
		ClaudeKey:      "k2",
		AIMLAPIKey:     "k3",
		ActiveProvider: "aimlapi",
	})

	// openai leads the fixed order whenever it isn't the excluded one
	assert.Equal(t, "openai", r.Fallback("aimlapi").Name())
	assert.Equal(t, "claude", r.Fallback("openai").Name())

	// with nothing but the mock registered, the mock is the fallback
	bare := NewRegistry(context.Background(), Credentials{})
	assert.Equal(t, "mock", bare.Fallback("openai").Name())
	assert.Nil(t, bare.Fallback("mock"))
}
