package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "peakram.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
accountant: rss
sample_interval: 2ms
settle_passes: 3
elements: 1000
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rss", cfg.Accountant)
	assert.Equal(t, 2*time.Millisecond, cfg.SampleInterval)
	assert.Equal(t, 3, cfg.SettlePasses)
	assert.Equal(t, 1000, cfg.Elements)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "elements: 1000\n")
	t.Setenv("PEAKRAM_ELEMENTS", "5000")
	t.Setenv("PEAKRAM_SAMPLE_INTERVAL", "10ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Elements)
	assert.Equal(t, 10*time.Millisecond, cfg.SampleInterval)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	for name, body := range map[string]string{
		"unknown accountant": "accountant: swap\n",
		"zero elements":      "elements: 0\n",
		"negative passes":    "settle_passes: -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
