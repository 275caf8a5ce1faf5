package usage

import (
	"context"
	"log"
	"time"

	"github.com/neurativo/backend/internal/ai"
	"github.com/neurativo/backend/internal/middleware"
	"github.com/neurativo/backend/internal/store"
)

// Store is the persistence surface the logger needs
type Store interface {
	InsertUsageLog(ctx context.Context, rec store.UsageLogRecord) error
}

const writeTimeout = 10 * time.Second

// Logger records AI usage per acting user. Writes are fire-and-forget: they
// run detached from the request so a slow or failing insert never delays or
// fails the caller.
type Logger struct {
	store Store
}

func NewLogger(store Store) *Logger {
	return &Logger{store: store}
}

// Record implements ai.UsageRecorder. Anonymous calls are not recorded.
func (l *Logger) Record(ctx context.Context, feature, provider string, resp *ai.Response) {
	userID := middleware.Actor(ctx)
	if userID == "" {
		return
	}

	rec := store.UsageLogRecord{
		UserID:       userID,
		Feature:      feature,
		Provider:     provider,
		Success:      resp.Error == "",
		ErrorMessage: resp.Error,
	}
	if resp.Usage != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Cost = resp.Usage.Cost
	}

	// Detach from the request context so cancellation doesn't lose the row
	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := l.store.InsertUsageLog(writeCtx, rec); err != nil {
			log.Printf("[Usage] Error logging AI usage: %v", err)
		}
	}()
}
