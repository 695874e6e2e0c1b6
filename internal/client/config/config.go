package config

import (
	"path/filepath"
	"time"
)

// Config holds runtime settings for the planner CLI.
type Config struct {
	ServerURL           string
	DataDir             string
	DatabaseFile        string
	LogFile             string
	LogLevel            string
	SyncInterval        time.Duration
	OnlineCheckInterval time.Duration
	UploadConcurrency   int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DataDir = ".planner"
	c.DatabaseFile = "planner.db"
	c.LogFile = "planner.log"
	c.LogLevel = "info"
	c.SyncInterval = 5 * time.Minute
	c.OnlineCheckInterval = 3 * time.Second
	c.UploadConcurrency = 4
}

// DatabasePath resolves DatabaseFile against DataDir.
func (c *Config) DatabasePath() string { return c.resolve(c.DatabaseFile) }

// LogPath resolves LogFile against DataDir.
func (c *Config) LogPath() string { return c.resolve(c.LogFile) }

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
