package tasks

import (
	"context"
)

// ScheduledTaskFunc is the signature for all scheduled tasks. The context
// provided by the scheduler must be respected for cancellation; a returned
// error is logged by the scheduler.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns the map of registered scheduled tasks. The keys
// match the task names used in the scheduler configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		"rollup_flush":    newRollupFlushTask(deps),
		"sql_maintenance": newSQLMaintenanceTask(deps),
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
