package ai

import (
	"context"
	"log"
	"sort"
)

// Credentials is the resolved provider configuration after any remote
// override has been merged
type Credentials struct {
	OpenAIKey      string
	ClaudeKey      string
	GeminiKey      string
	AIMLAPIKey     string
	ActiveProvider string
}

// fallbackOrder is the fixed preference used when the serving provider
// fails. Mock sits last and is always registered.
var fallbackOrder = []string{"openai", "claude", "gemini", "aimlapi", "mock"}

// Registry holds the configured providers. The set is fixed at construction.
type Registry struct {
	providers map[string]Provider
	active    string
}

// NewRegistry registers one provider per configured key, plus the mock. The
// requested active provider wins only when it was actually registered.
func NewRegistry(ctx context.Context, creds Credentials) *Registry {
	providers := map[string]Provider{
		"mock": NewMockProvider(),
	}

	if creds.AIMLAPIKey != "" {
		providers["aimlapi"] = NewAIMLAPIProvider(creds.AIMLAPIKey)
	}
	if creds.OpenAIKey != "" {
		providers["openai"] = NewOpenAIProvider(creds.OpenAIKey)
	}
	if creds.ClaudeKey != "" {
		providers["claude"] = NewClaudeProvider(creds.ClaudeKey)
	}
	if creds.GeminiKey != "" {
		gemini, err := NewGeminiProvider(ctx, creds.GeminiKey)
		if err != nil {
			log.Printf("[Registry] Skipping gemini provider: %v", err)
		} else {
			providers["gemini"] = gemini
		}
	}

	active := "mock"
	if _, ok := providers[creds.ActiveProvider]; ok {
		active = creds.ActiveProvider
	}

	r := &Registry{providers: providers, active: active}
	log.Printf("[Registry] Providers: %v, active: %s", r.Available(), active)
	return r
}

// Get returns the named provider if registered
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Active is the name of the serving provider
func (r *Registry) Active() string {
	return r.active
}

// ActiveProvider resolves the serving provider
func (r *Registry) ActiveProvider() (Provider, bool) {
	p, ok := r.providers[r.active]
	return p, ok
}

// Fallback returns the first registered provider in the fixed preference
// order that is not the excluded one, or nil
func (r *Registry) Fallback(exclude string) Provider {
	for _, name := range fallbackOrder {
		if name == exclude {
			continue
		}
		if p, ok := r.providers[name]; ok {
			return p
		}
	}
	return nil
}

// Available lists registered provider names, sorted
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
