package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sun6bks/ticket-api/internal/service"
)

// ReconcileWorker periodically sweeps stale pending transactions against the
// gateway. The sweep catches payments whose webhook never arrived, typically
// because of a delivery outage or misconfigured notification URL.
type ReconcileWorker struct {
	reconciler *service.ReconcileService
	interval   time.Duration
}

// NewReconcileWorker constructs a ReconcileWorker.
func NewReconcileWorker(reconciler *service.ReconcileService, interval time.Duration) *ReconcileWorker {
	return &ReconcileWorker{reconciler: reconciler, interval: interval}
}

// Start begins the periodic sweep loop until context is canceled.
func (w *ReconcileWorker) Start(ctx context.Context) {
	log.Info().
		Dur("interval", w.interval).
		Msg("Starting reconcile worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Reconcile worker stopped")
			return
		}
	}
}

func (w *ReconcileWorker) run(ctx context.Context) {
	stats, err := w.reconciler.SweepOnce(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Reconcile sweep failed")
		return
	}
	if stats.Scanned == 0 {
		return
	}

	log.Info().
		Int("scanned", stats.Scanned).
		Int("updated", stats.Updated).
		Int("errors", stats.Errors).
		Msg("Reconcile sweep completed")
}
