// Package tasks implements the scheduled background tasks: periodic
// analytics flushing and database maintenance.
package tasks

import (
	"log/slog"

	"github.com/introbot/introspect/internal/analysis"
	"github.com/introbot/introspect/internal/config"
	"github.com/introbot/introspect/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Engine *analysis.Engine
	Config *config.Config
}
