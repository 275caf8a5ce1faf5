package usage

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// PruneStore is the persistence surface the retention worker needs
type PruneStore interface {
	PruneUsageLogs(ctx context.Context, retentionDays int) (int64, error)
}

// Worker prunes aged usage logs on a daily schedule
type Worker struct {
	store         PruneStore
	retentionDays int
	cron          *cron.Cron
}

func NewWorker(store PruneStore, retentionDays int) *Worker {
	return &Worker{
		store:         store,
		retentionDays: retentionDays,
		cron:          cron.New(),
	}
}

// Start schedules the nightly retention sweep
func (w *Worker) Start() {
	// cron runs each job on its own goroutine already
	_, err := w.cron.AddFunc("0 3 * * *", w.prune)
	if err != nil {
		log.Printf("[UsageWorker] Failed to schedule retention job: %v", err)
		return
	}

	w.cron.Start()
	log.Printf("[UsageWorker] Scheduled daily usage-log pruning at 3:00 AM, retention %d days", w.retentionDays)
}

// Stop stops the scheduler
func (w *Worker) Stop() {
	w.cron.Stop()
	log.Println("[UsageWorker] Stopped")
}

func (w *Worker) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deleted, err := w.store.PruneUsageLogs(ctx, w.retentionDays)
	if err != nil {
		log.Printf("[UsageWorker] Prune failed: %v", err)
		return
	}
	log.Printf("[UsageWorker] Pruned %d usage logs older than %d days", deleted, w.retentionDays)
}
