package config

import (
	"github.com/dmitrijs2005/planner/internal/flagx"
	"github.com/dmitrijs2005/planner/internal/timex"
)

// FileConfig is the on-disk shape of Config, read from JSON or YAML.
// Durations accept "1m" style strings or integer nanoseconds.
type FileConfig struct {
	EndpointAddr                string         `json:"endpoint_addr" yaml:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	ContentURLValidityDuration  timex.Duration `json:"content_url_validity_duration" yaml:"content_url_validity_duration"`
	S3RootUser                  string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                    string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogLevel                    string         `json:"log_level" yaml:"log_level"`
}

// parseFile loads the file named by -c/-config into config. Fields missing
// from the file keep their current values. It panics if the file cannot be
// read or decoded.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	c := &FileConfig{}
	if err := flagx.ReadConfigFile(path, c); err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddr, c.EndpointAddr)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration.Duration)
	overlay(&config.ContentURLValidityDuration, c.ContentURLValidityDuration.Duration)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.LogLevel, c.LogLevel)
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
