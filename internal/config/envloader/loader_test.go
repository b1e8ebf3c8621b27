package envloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvLoader_Defaults(t *testing.T) {
	cfg, err := NewEnvLoader().Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 16, cfg.QueueSize)
	assert.NotEmpty(t, cfg.Kinds)
}

func TestEnvLoader_EnvOverrides(t *testing.T) {
	t.Setenv("OPSMON_WORKERS", "6")
	t.Setenv("OPSMON_QUEUE_SIZE", "64")
	t.Setenv("OPSMON_OPERATION_TIMEOUT", "90m")
	t.Setenv("OPSMON_KINDS", "backup,compaction")

	cfg, err := NewEnvLoader().Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, 64, cfg.QueueSize)
	assert.Equal(t, 90*time.Minute, cfg.OperationTimeout)
	assert.Equal(t, []string{"backup", "compaction"}, cfg.Kinds)
}

func TestEnvLoader_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opsmon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 3\nqueue_size: 8\n"), 0o600))

	t.Setenv("OPSMON_WORKERS", "5")

	cfg, err := NewEnvLoaderWithFile(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Workers, "environment must win over the file")
	assert.Equal(t, 8, cfg.QueueSize)
}

func TestEnvLoader_InvalidValues(t *testing.T) {
	t.Setenv("OPSMON_WORKERS", "-2")

	_, err := NewEnvLoader().Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
