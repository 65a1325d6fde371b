package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehand/setcutter/internal/config"
)

func TestNewWritesToFileSink(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "run.log")

	log, closeFn, err := New(&cfg)
	require.NoError(t, err)

	log.Infof("hello from the batch")
	closeFn()

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the batch")
	assert.Contains(t, string(data), "INFO")
}

func TestNewRespectsLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogLevel = "warn"
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")

	log, closeFn, err := New(&cfg)
	require.NoError(t, err)

	log.Infof("quiet")
	log.Warnf("loud")
	closeFn()

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestNewRejectsBadLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogLevel = "nope"

	_, _, err := New(&cfg)
	require.Error(t, err)
}
