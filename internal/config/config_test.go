package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/introbot/introspect/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: \"test-token\"\n")

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want %q", cfg.Logger.Level, "info")
	}
	if cfg.Database.Path != "storage.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "storage.db")
	}
	if cfg.Analytics.FeedbackInterval != 10 {
		t.Errorf("Analytics.FeedbackInterval = %d, want 10", cfg.Analytics.FeedbackInterval)
	}
	if cfg.Analytics.ReportMinMessages != 5 {
		t.Errorf("Analytics.ReportMinMessages = %d, want 5", cfg.Analytics.ReportMinMessages)
	}
	if cfg.Messages.Welcome == "" {
		t.Error("Messages.Welcome is empty, want default text")
	}

	task, ok := cfg.Scheduler.Tasks["rollup_flush"]
	if !ok {
		t.Fatal("Scheduler.Tasks missing rollup_flush")
	}
	if !task.Enabled || task.Schedule != "*/15 * * * *" {
		t.Errorf("rollup_flush task = %+v, want enabled with */15 schedule", task)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  json: true
telegram:
  token: "test-token"
database:
  path: /tmp/analytics.db
analytics:
  feedback_interval: 3
  report_min_messages: 2
`)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Logger.Level != "debug" || !cfg.Logger.JSON {
		t.Errorf("Logger = %+v, want debug/json", cfg.Logger)
	}
	if cfg.Database.Path != "/tmp/analytics.db" {
		t.Errorf("Database.Path = %q, want overridden path", cfg.Database.Path)
	}
	if cfg.Analytics.FeedbackInterval != 3 {
		t.Errorf("Analytics.FeedbackInterval = %d, want 3", cfg.Analytics.FeedbackInterval)
	}
	if cfg.Analytics.ReportMinMessages != 2 {
		t.Errorf("Analytics.ReportMinMessages = %d, want 2", cfg.Analytics.ReportMinMessages)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Missing token",
			content: "logger:\n  level: info\n",
		},
		{
			name:    "Invalid log level",
			content: "telegram:\n  token: \"test-token\"\nlogger:\n  level: verbose\n",
		},
		{
			name:    "Zero report minimum",
			content: "telegram:\n  token: \"test-token\"\nanalytics:\n  report_min_messages: 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := config.LoadConfig(path); err == nil {
				t.Error("LoadConfig() error = nil, want validation error")
			}
		})
	}
}
