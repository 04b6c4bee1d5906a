package tasks

import (
	"context"
	"fmt"
	"time"
)

// newRollupFlushTask creates the task that persists open daily rollups and
// loaded profiles. Ingest persists on every message already; this task
// reconciles in-memory state after transient persistence failures and keeps
// the open day durable between messages.
func newRollupFlushTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "rollup_flush")

	return func(ctx context.Context) error {
		startTime := time.Now()

		if err := deps.Engine.Flush(ctx); err != nil {
			log.ErrorContext(ctx, "Rollup flush failed", "error", err, "duration", time.Since(startTime))
			return fmt.Errorf("rollup flush failed: %w", err)
		}

		log.InfoContext(ctx, "Rollup flush completed", "duration", time.Since(startTime))
		return nil
	}
}
