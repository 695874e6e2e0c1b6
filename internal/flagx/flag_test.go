package flagx

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "both short and long present, preserve order",
			args:         []string{"--config=first.json", "-c", "second.json", "-x", "1"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=first.json", "-c", "second.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag (no value)",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
		{
			name:         "value that looks like a flag but with equals form",
			args:         []string{"--config=--weird.json"},
			allowedFlags: []string{"--config"},
			want:         []string{"--config=--weird.json"},
		},
		{
			name:         "multiple allowed flags kept",
			args:         []string{"-s", "http://localhost:8080", "-c", "conf.yaml", "--other", "x"},
			allowedFlags: []string{"-c", "-s"},
			want:         []string{"-s", "http://localhost:8080", "-c", "conf.yaml"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "path with spaces remains single arg",
			args:         []string{"-c", "/home/user/conf.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "/home/user/conf.json"},
		},
		{
			name:         "do not treat next dash-starting token as value",
			args:         []string{"-c", "--config=alt.json"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "--config=alt.json"},
		},
		{
			name:         "repeated allowed flag is preserved in order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"planner", "-c", "/etc/planner.yaml"}
		assert.Equal(t, "/etc/planner.yaml", ConfigFileFlag())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"planner", "-config", "/etc/planner.json"}
		assert.Equal(t, "/etc/planner.json", ConfigFileFlag())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"planner", "-s", "http://x", "-i", "5"}
		assert.Empty(t, ConfigFileFlag())
	})

	t.Run("last one wins", func(t *testing.T) {
		os.Args = []string{"planner", "-c", "/a.json", "-config", "/b.json"}
		assert.Equal(t, "/b.json", ConfigFileFlag())
	})
}

type sampleConfig struct {
	ServerURL string `json:"server_url" yaml:"server_url"`
	Workers   int    `json:"workers" yaml:"workers"`
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"server_url":"http://json","workers":2}`), 0o600))

	yamlPath := filepath.Join(dir, "cfg.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("server_url: http://yaml\nworkers: 3\n"), 0o600))

	var fromJSON sampleConfig
	require.NoError(t, ReadConfigFile(jsonPath, &fromJSON))
	assert.Equal(t, sampleConfig{ServerURL: "http://json", Workers: 2}, fromJSON)

	var fromYAML sampleConfig
	require.NoError(t, ReadConfigFile(yamlPath, &fromYAML))
	assert.Equal(t, sampleConfig{ServerURL: "http://yaml", Workers: 3}, fromYAML)
}

func TestReadConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()

	var dst sampleConfig
	err := ReadConfigFile(filepath.Join(dir, "missing.json"), &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	tomlPath := filepath.Join(dir, "cfg.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("x = 1"), 0o600))
	require.ErrorIs(t, ReadConfigFile(tomlPath, &dst), ErrUnsupportedConfigFormat)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte("{"), 0o600))
	err = ReadConfigFile(badPath, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}
