package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaultLogLevel, cfg.LogLevel)
	assert.Equal(t, uint32(defaultRecordSize), cfg.RecordSize)
	assert.Equal(t, defaultShareOrigin, cfg.ShareOrigin)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AES128GCMCTL_LOG_LEVEL", "debug")
	t.Setenv("AES128GCMCTL_RECORD_SIZE", "4096")
	t.Setenv("AES128GCMCTL_SHARE_ORIGIN", "https://share.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint32(4096), cfg.RecordSize)
	assert.Equal(t, "https://share.example.com", cfg.ShareOrigin)
}

func TestValidateRejectsSmallRecordSize(t *testing.T) {
	cfg := &Config{LogLevel: "info", RecordSize: 10, ShareOrigin: "https://x.com"}
	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidateRejectsEmptyLogLevel(t *testing.T) {
	cfg := &Config{LogLevel: "  ", RecordSize: 4096, ShareOrigin: "https://x.com"}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptyShareOrigin(t *testing.T) {
	cfg := &Config{LogLevel: "info", RecordSize: 4096, ShareOrigin: ""}
	assert.Error(t, cfg.Validate())
}

func TestValidateAcceptsMinimumRecordSize(t *testing.T) {
	cfg := &Config{LogLevel: "info", RecordSize: 18, ShareOrigin: "https://x.com"}
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsMissingConfigFile(t *testing.T) {
	_, err := Load("/nonexistent/path/to/config.yaml")
	assert.Error(t, err)
}
