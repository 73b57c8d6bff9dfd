package config_test

import (
	"testing"
	"time"

	"github.com/plus3/workbench/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.LogMode)
	assert.Equal(t, time.Millisecond, cfg.Tick)
	assert.Equal(t, 200, cfg.Bills)
	assert.Equal(t, "colony", cfg.SaveName)
	assert.Equal(t, "fs", cfg.Slot.Driver)
	assert.Equal(t, "./saves", cfg.Slot.Dir)
	assert.Equal(t, "saves/", cfg.Slot.Prefix)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WORKBENCH_LOG_MODE", "prod")
	t.Setenv("WORKBENCH_BILLS", "12")
	t.Setenv("WORKBENCH_AUTOSAVE_EVERY", "5")
	t.Setenv("WORKBENCH_SLOT_DRIVER", "s3")
	t.Setenv("WORKBENCH_SLOT_S3_BUCKET", "colony-saves")
	t.Setenv("WORKBENCH_SLOT_S3_PATH_STYLE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, 12, cfg.Bills)
	assert.Equal(t, int64(5), cfg.AutosaveEvery)
	assert.Equal(t, "s3", cfg.Slot.Driver)
	assert.Equal(t, "colony-saves", cfg.Slot.Bucket)
	assert.True(t, cfg.Slot.PathStyle)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unparseable", "WORKBENCH_BILLS", "lots"},
		{"negative bills", "WORKBENCH_BILLS", "-1"},
		{"legacy share out of range", "WORKBENCH_LEGACY_SHARE", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse env:")
		})
	}
}
