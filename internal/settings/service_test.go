package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values map[string][]byte
}

func (s *fakeStore) GetSetting(ctx context.Context, key string) ([]byte, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, errors.New("no rows")
	}
	return v, nil
}

func (s *fakeStore) SetSetting(ctx context.Context, key string, value []byte, description string) error {
	s.values[key] = value
	return nil
}

func TestServiceLoadsAIConfig(t *testing.T) {
	st := &fakeStore{values: map[string][]byte{
		KeyAIConfig: []byte(`{"claude_key": "ck", "active_provider": "claude"}`),
	}}

	svc, err := NewService(context.Background(), st)
	require.NoError(t, err)

	cfg := svc.AIConfig()
	assert.Equal(t, "ck", cfg.ClaudeKey)
	assert.Equal(t, "claude", cfg.ActiveProvider)
	assert.Empty(t, cfg.OpenAIKey, "absent fields stay empty so environment values win")
}

func TestServiceMissingRowIsNotFatal(t *testing.T) {
	svc, err := NewService(context.Background(), &fakeStore{values: map[string][]byte{}})
	require.NoError(t, err)
	assert.Equal(t, AIConfig{}, svc.AIConfig())
}

func TestServiceMalformedRowIsIgnored(t *testing.T) {
	st := &fakeStore{values: map[string][]byte{KeyAIConfig: []byte("{broken")}}
	svc, err := NewService(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, AIConfig{}, svc.AIConfig())
}
