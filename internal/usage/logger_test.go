package usage

import (
	"context"
	"testing"
	"time"

	"github.com/neurativo/backend/internal/ai"
	"github.com/neurativo/backend/internal/middleware"
	"github.com/neurativo/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelStore struct {
	inserts chan store.UsageLogRecord
}

func (s *channelStore) InsertUsageLog(ctx context.Context, rec store.UsageLogRecord) error {
	s.inserts <- rec
	return nil
}

func TestRecordPersistsForActingUser(t *testing.T) {
	st := &channelStore{inserts: make(chan store.UsageLogRecord, 1)}
	logger := NewLogger(st)

	ctx := middleware.WithActor(context.Background(), "user-3")
	logger.Record(ctx, ai.FeatureQuiz, "openai", &ai.Response{
		Content: "quiz",
		Usage:   &ai.Usage{InputTokens: 10, OutputTokens: 20, Cost: 0.03},
	})

	select {
	case rec := <-st.inserts:
		assert.Equal(t, "user-3", rec.UserID)
		assert.Equal(t, ai.FeatureQuiz, rec.Feature)
		assert.Equal(t, "openai", rec.Provider)
		assert.Equal(t, 10, rec.InputTokens)
		assert.Equal(t, 20, rec.OutputTokens)
		assert.True(t, rec.Success)
	case <-time.After(2 * time.Second):
		t.Fatal("usage record was never written")
	}
}

func TestRecordMarksProviderReportedFailure(t *testing.T) {
	st := &channelStore{inserts: make(chan store.UsageLogRecord, 1)}
	logger := NewLogger(st)

	ctx := middleware.WithActor(context.Background(), "user-3")
	logger.Record(ctx, ai.FeatureSummarize, "claude", &ai.Response{Error: "quota exceeded"})

	select {
	case rec := <-st.inserts:
		assert.False(t, rec.Success)
		assert.Equal(t, "quota exceeded", rec.ErrorMessage)
	case <-time.After(2 * time.Second):
		t.Fatal("usage record was never written")
	}
}

func TestRecordSkipsAnonymousCalls(t *testing.T) {
	st := &channelStore{inserts: make(chan store.UsageLogRecord, 1)}
	logger := NewLogger(st)

	logger.Record(context.Background(), ai.FeatureQuiz, "mock", &ai.Response{Content: "x"})

	select {
	case <-st.inserts:
		t.Fatal("anonymous calls must not be recorded")
	case <-time.After(100 * time.Millisecond):
	}
}

type fixedPruneStore struct {
	gotDays int
}

func (s *fixedPruneStore) PruneUsageLogs(ctx context.Context, retentionDays int) (int64, error) {
	s.gotDays = retentionDays
	return 5, nil
}

func TestWorkerPrunePassesRetention(t *testing.T) {
	st := &fixedPruneStore{}
	w := NewWorker(st, 90)
	w.prune()
	require.Equal(t, 90, st.gotDays)
}

func TestWorkerJobRunsPruneInline(t *testing.T) {
	st := &fixedPruneStore{}
	w := NewWorker(st, 30)
	w.Start()
	defer w.Stop()

	entries := w.cron.Entries()
	require.Len(t, entries, 1)

	// The scheduled job is the sweep itself; it has completed by the time
	// Run returns
	entries[0].Job.Run()
	assert.Equal(t, 30, st.gotDays)
}
