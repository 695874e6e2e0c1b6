// Package config loads runtime configuration for the planner CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given with -c or -config; .json files are read
//     as JSON, .yaml/.yml files as YAML.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Invalid input panics during startup.
package config
