// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a logrus level name: debug, info, warn, error (default warn).
	Level string `json:"level" yaml:"level" mapstructure:"log_level"`

	// File is the log file path. Empty disables file logging.
	File string `json:"file" yaml:"file" mapstructure:"log_file"`
}

// UpdateConfig holds settings for the release check.
type UpdateConfig struct {
	// Repository is the GitHub "owner/name" whose releases are checked.
	Repository string `json:"repository" yaml:"repository" mapstructure:"repository"`

	// Token is an optional GitHub token for higher rate limits.
	Token string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"github_token"`

	// SecretsDir holds one file per secret; github-token is read from it
	// when Token is empty.
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir" mapstructure:"secrets_dir"`
}

// Config is the application configuration, built once at startup and
// passed to the components that need it.
type Config struct {
	LogConfig    `yaml:",inline" mapstructure:",squash"`
	UpdateConfig `yaml:",inline" mapstructure:",squash"`

	// DefaultsFile is the JSON file holding the persisted form defaults.
	DefaultsFile string `json:"defaults_file" yaml:"defaults_file" mapstructure:"defaults_file"`

	// JournalFile is the SQLite database recording processed files.
	// Empty disables the journal.
	JournalFile string `json:"journal_file" yaml:"journal_file" mapstructure:"journal_file"`

	// Axes selects the margin axis mapping: natural or legacy.
	Axes AxisMode `json:"axes" yaml:"axes" mapstructure:"axes"`

	// ContinueOnError keeps a batch going after a failed file.
	ContinueOnError bool `json:"continue_on_error" yaml:"continue_on_error" mapstructure:"continue_on_error"`

	// Strict turns on strict PDF validation instead of the lenient default.
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`
}
