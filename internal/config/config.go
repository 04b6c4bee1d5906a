// Package config provides configuration loading and validation for the
// Introspect bot. Values come from defaults, an optional YAML file, and
// BOT_-prefixed environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/viper"
)

// Config defines the application configuration for all components.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoggerConfig controls structured logging output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds transport settings. BotInfo is populated at runtime
// after the bot identifies itself, not from the config file.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig holds persistence settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// AnalyticsConfig tunes the engine-facing behavior of the transport layer.
// The engine's scoring constants themselves are fixed, not configuration.
type AnalyticsConfig struct {
	// FeedbackInterval sends an unsolicited quick analysis every Nth
	// ingested message. 0 disables the feedback.
	FeedbackInterval int `mapstructure:"feedback_interval" validate:"min=0"`

	// ReportMinMessages is the minimum history before a comprehensive
	// report is generated.
	ReportMinMessages int `mapstructure:"report_min_messages" validate:"min=1"`
}

// MessagesConfig holds the user-facing reply templates.
type MessagesConfig struct {
	Welcome       string `mapstructure:"welcome"`
	Help          string `mapstructure:"help"`
	GeneralError  string `mapstructure:"general_error"`
	NeedMoreMood  string `mapstructure:"need_more_mood"`
	NeedMoreTrait string `mapstructure:"need_more_trait"`
	NeedMoreData  string `mapstructure:"need_more_data"`
	NoStats       string `mapstructure:"no_stats"`
	Erased        string `mapstructure:"erased"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig configures one scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// LoadConfig reads configuration from the given YAML file path (optional),
// layered over defaults and under BOT_* environment variables, then
// validates it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		// Missing config file is fine, defaults plus env apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", false)

	v.SetDefault("database.path", "storage.db")

	v.SetDefault("analytics.feedback_interval", 10)
	v.SetDefault("analytics.report_min_messages", 5)

	v.SetDefault("messages.welcome", "Welcome! I analyze your communication patterns as you chat.\n\n"+
		"/mood - current mood analysis\n"+
		"/personality - personality assessment\n"+
		"/report - detailed behavior report\n"+
		"/stats - your usage statistics\n"+
		"/erase - delete all your data\n"+
		"/help - full command list")
	v.SetDefault("messages.help", "Just chat normally; every message is analyzed for mood and patterns.\n\n"+
		"/mood - detailed mood analysis\n"+
		"/personality - personality assessment\n"+
		"/report - comprehensive behavior report\n"+
		"/stats - usage statistics\n"+
		"/erase - delete all your data\n\n"+
		"Your data stays on this bot's server and you can erase it anytime.")
	v.SetDefault("messages.general_error", "An error occurred. Please try again later.")
	v.SetDefault("messages.need_more_mood", "I need more messages to analyze your mood. Keep chatting with me!")
	v.SetDefault("messages.need_more_trait", "I need more messages to analyze your personality. Keep chatting!")
	v.SetDefault("messages.need_more_data", "I need at least %d messages to generate a comprehensive report. Keep chatting!")
	v.SetDefault("messages.no_stats", "No data available yet. Start chatting to see your stats!")
	v.SetDefault("messages.erased", "All your data has been deleted.")

	v.SetDefault("scheduler.tasks", map[string]map[string]any{
		"rollup_flush":    {"enabled": true, "schedule": "*/15 * * * *"},
		"sql_maintenance": {"enabled": true, "schedule": "0 4 * * *"},
	})
}
