package config

// Default values for settings missing from the rc file and environment.
const (
	DefaultGitMessage = "init"
	DefaultLogLevel   = "warn"
)

// Settings is the user-level configuration.
type Settings struct {
	PackageManager string      `mapstructure:"packageManager"` // Preferred manager when a preset names none
	Registry       string      `mapstructure:"registry"`       // Registry URL for installs
	UseConfigFiles bool        `mapstructure:"useConfigFiles"` // Manual presets write dedicated config files
	LogLevel       string      `mapstructure:"logLevel"`       // debug, info, warn or error
	Git            GitSettings `mapstructure:"git"`
}

// GitSettings controls repository initialization.
type GitSettings struct {
	Skip    bool   `mapstructure:"skip"`    // Never initialize a repository
	Message string `mapstructure:"message"` // Initial commit message
}

// NewDefaultSettings returns settings with every default applied.
func NewDefaultSettings() *Settings {
	return &Settings{
		UseConfigFiles: true,
		LogLevel:       DefaultLogLevel,
		Git:            GitSettings{Message: DefaultGitMessage},
	}
}
