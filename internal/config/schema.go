package config

// Config is the root configuration structure
type Config struct {
	Version int           `yaml:"version" validate:"gte=1"`
	Log     LogConfig     `yaml:"log"`
	Service ServiceConfig `yaml:"service"`
	Export  ExportConfig  `yaml:"export"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// ServiceConfig holds feed building settings
type ServiceConfig struct {
	// Policy applied to usage points whose service kind is absent
	Policy string `yaml:"policy" validate:"oneof=assume-gas reject missing"`
}

// ExportConfig holds export defaults. Relative paths in a config file are
// relative to that file's directory.
type ExportConfig struct {
	Format     string `yaml:"format" validate:"oneof=text json yaml"`
	Path       string `yaml:"path,omitempty"` // empty = stdout
	SQLitePath string `yaml:"sqlite_path" validate:"required"`
}
