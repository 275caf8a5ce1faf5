package settings

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// KeyAIConfig is the settings row holding provider key and routing overrides
const KeyAIConfig = "ai_config"

// Store defines the interface for settings persistence
type Store interface {
	GetSetting(ctx context.Context, key string) ([]byte, error)
	SetSetting(ctx context.Context, key string, value []byte, description string) error
}

// AIConfig is the remotely managed provider configuration. Empty fields
// leave the environment value in place.
type AIConfig struct {
	OpenAIKey      string `json:"openai_key,omitempty"`
	ClaudeKey      string `json:"claude_key,omitempty"`
	GeminiKey      string `json:"gemini_key,omitempty"`
	AIMLAPIKey     string `json:"aimlapi_key,omitempty"`
	ActiveProvider string `json:"active_provider,omitempty"`
}

// Service provides cached access to remotely managed settings
type Service struct {
	store    Store
	aiConfig AIConfig
	mu       sync.RWMutex
}

// NewService creates a settings service and loads settings from DB. A missing
// row or unreachable table is not fatal, the environment values stand.
func NewService(ctx context.Context, store Store) (*Service, error) {
	s := &Service{store: store}
	if err := s.Refresh(ctx); err != nil {
		log.Printf("[Settings] Warning: Failed to load from DB, using environment config: %v", err)
	}
	return s, nil
}

// AIConfig returns the cached provider overrides
func (s *Service) AIConfig() AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aiConfig
}

// Refresh reloads settings from the database
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.GetSetting(ctx, KeyAIConfig)
	if err != nil {
		log.Printf("[Settings] Key '%s' not found in DB, using environment config", KeyAIConfig)
		return nil
	}

	var cfg AIConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("[Settings] Failed to unmarshal '%s': %v", KeyAIConfig, err)
		return nil
	}

	s.aiConfig = cfg
	log.Printf("[Settings] Loaded AI config from DB, active provider override: %q", cfg.ActiveProvider)
	return nil
}
