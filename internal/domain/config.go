package domain

// Config mirrors ~/.sqlchat/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Server              ServerSettings    `yaml:"server"`
	Database            DatabaseSettings  `yaml:"database"`
	Security            SecuritySettings  `yaml:"security"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel   string `yaml:"default_model"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// ModelDefinition describes one reachable language model endpoint.
type ModelDefinition struct {
	Name        string  `yaml:"name"`
	ModelID     string  `yaml:"model_id"`
	Endpoint    string  `yaml:"endpoint"`
	AuthEnvVar  string  `yaml:"auth_env_var,omitempty"`
	MaxTokens   int     `yaml:"max_tokens,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`
}

// ServerSettings configures the HTTP surface.
type ServerSettings struct {
	Addr string `yaml:"addr"`
}

// DatabaseSettings locates the SQLite files.
type DatabaseSettings struct {
	Path        string `yaml:"path"`
	HistoryPath string `yaml:"history_path"`
}

// SecuritySettings locates the keyword rules for the security gate.
type SecuritySettings struct {
	RulesFile string `yaml:"rules_file"`
}
