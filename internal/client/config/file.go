package config

import (
	"time"

	"github.com/dmitrijs2005/planner/internal/flagx"
	"github.com/dmitrijs2005/planner/internal/timex"
)

// FileConfig is the on-disk shape of Config. Intervals accept "30s" style
// strings or integer nanoseconds. Fields left out keep their current value.
type FileConfig struct {
	ServerURL           string         `json:"server_url" yaml:"server_url"`
	DataDir             string         `json:"data_dir" yaml:"data_dir"`
	DatabaseFile        string         `json:"database_file" yaml:"database_file"`
	LogFile             string         `json:"log_file" yaml:"log_file"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
	SyncInterval        timex.Duration `json:"sync_interval" yaml:"sync_interval"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	UploadConcurrency   int            `json:"upload_concurrency" yaml:"upload_concurrency"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
// It panics when the file cannot be read or decoded.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	var fc FileConfig
	if err := flagx.ReadConfigFile(path, &fc); err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	setString(&cfg.ServerURL, fc.ServerURL)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.DatabaseFile, fc.DatabaseFile)
	setString(&cfg.LogFile, fc.LogFile)
	setString(&cfg.LogLevel, fc.LogLevel)
	setDuration(&cfg.SyncInterval, fc.SyncInterval)
	setDuration(&cfg.OnlineCheckInterval, fc.OnlineCheckInterval)
	if fc.UploadConcurrency > 0 {
		cfg.UploadConcurrency = fc.UploadConcurrency
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
