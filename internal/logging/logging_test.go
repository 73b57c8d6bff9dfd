package logging_test

import (
	"testing"

	"github.com/plus3/workbench/extdata"
	"github.com/plus3/workbench/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ extdata.Diagnostics = (*logging.Logger)(nil)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logging.NewWithCore(core).With("world", "w1")

	log.Warn("Found old bill, migrating to new format", "bill", "Bill_4")
	log.Info("opened slot", "driver", "postgres", "dsn", "postgres://u:p@db/saves")
	log.Error("autosave failed", "error", "disk full")

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, map[string]any{"world": "w1", "bill": "Bill_4"}, entries[0].ContextMap())

	assert.Equal(t, "[REDACTED]", entries[1].ContextMap()["dsn"])
	assert.Equal(t, "postgres", entries[1].ContextMap()["driver"])

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		log, err := logging.New(mode)
		require.NoError(t, err, mode)
		log.Sync()
	}
	logging.NewNop().Info("discarded")
}
