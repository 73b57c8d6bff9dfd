package main

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/plus3/workbench/internal/config"
	"github.com/plus3/workbench/internal/logging"
	"github.com/plus3/workbench/slot"
	"github.com/plus3/workbench/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	cfg := config.Config{
		Tick:          time.Millisecond,
		Duration:      50 * time.Millisecond,
		Bills:         40,
		LegacyShare:   0.5,
		Seed:          7,
		SaveName:      "colony",
		AutosaveEvery: 10,
		SweepEvery:    5,
		Slot:          slot.Config{Driver: "memory"},
	}
	require.NoError(t, run(t.Context(), cfg, logging.NewNop()))
}

func TestPopulate(t *testing.T) {
	catalog := defaultCatalog()
	w, err := world.New(catalog)
	require.NoError(t, err)

	legacy := populate(w, rand.New(rand.NewSource(1)), recipesOf(catalog), 100, 1)

	assert.Equal(t, 100, w.Len())
	assert.Positive(t, legacy)
	assert.Less(t, legacy, 100, "recipes without output are never legacy")
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:  time.Second,
		Bills:     3,
		Scheduler: &world.SchedulerStats{Systems: []world.SystemStats{{Name: "sweepSystem", ExecutionCount: 2}}},
		Metrics:   []Metric{{Name: "workbench_extdata_records_created_total", Labels: "path=migrated", Value: 2}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	assert.Contains(t, buf.String(), "workbench_extdata_records_created_total{path=migrated} 2")
	assert.Contains(t, buf.String(), "- sweepSystem: 2 runs")
}
