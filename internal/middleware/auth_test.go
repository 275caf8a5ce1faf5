package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/neurativo/backend/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorFromRequest(t *testing.T) {
	tm := token.NewManager("test-secret")
	auth := NewAuth(tm)

	t.Run("valid bearer token", func(t *testing.T) {
		tok, err := tm.Generate("user-7", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/extract-content", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		assert.Equal(t, "user-7", auth.ActorFromRequest(req))
	})

	t.Run("missing header is anonymous", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/extract-content", nil)
		assert.Equal(t, "", auth.ActorFromRequest(req))
	})

	t.Run("invalid token is anonymous", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/extract-content", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		assert.Equal(t, "", auth.ActorFromRequest(req))
	})

	t.Run("non-bearer scheme is anonymous", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/extract-content", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		assert.Equal(t, "", auth.ActorFromRequest(req))
	})
}

func TestActorContextRoundtrip(t *testing.T) {
	ctx := WithActor(context.Background(), "user-9")
	assert.Equal(t, "user-9", Actor(ctx))
	assert.Equal(t, "", Actor(context.Background()))
}
