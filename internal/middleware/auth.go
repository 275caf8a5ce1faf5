package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/neurativo/backend/internal/token"
)

type contextKey string

const UserIDKey contextKey = "userID"

// Auth extracts the acting user from a Bearer token when one is present.
// The pipeline endpoints work unauthenticated; the user ID only gates the
// usage-log and persistence side effects, so a missing or invalid token
// leaves the request anonymous instead of rejecting it.
type Auth struct {
	tokenManager *token.Manager
}

func NewAuth(tm *token.Manager) *Auth {
	return &Auth{tokenManager: tm}
}

// ActorFromRequest returns the verified user ID or "" for anonymous callers
func (a *Auth) ActorFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	userID, err := a.tokenManager.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return ""
	}
	return userID
}

// WithActor stores the user ID on the request context
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// Actor extracts the user ID from context; "" when anonymous
func Actor(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}
