package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "GREENBUTTON_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "greenbutton.yaml"
	// ConfigDirName is the directory under XDG and /etc
	ConfigDirName = "greenbutton"
)

// searchPaths lists the config candidates in priority order. Unset
// environment variables contribute no candidate.
func searchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, ConfigFileName)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the first existing regular file among the search
// paths, made absolute, or "" when there is none.
func FindConfigPath() string {
	for _, p := range searchPaths() {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	return ""
}

// DefaultConfigPath returns where a new config file should be written
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, ConfigDirName, "config.yaml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	}
	return ConfigFileName
}

// EnsureConfigDir creates the directory holding configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

// resolveRelative anchors the relative output paths of a loaded config at the
// directory of its file, so a config under /etc/greenbutton writes its
// database next to it regardless of the working directory.
func (c *Config) resolveRelative(configPath string) {
	dir := filepath.Dir(configPath)
	c.Export.Path = anchor(dir, c.Export.Path)
	c.Export.SQLitePath = anchor(dir, c.Export.SQLitePath)
}

func anchor(dir, p string) string {
	if p == "" || p == ":memory:" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
