package save_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/plus3/workbench/save"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counters struct {
	key    string
	Name   string
	Keys   []int
	Values []string
	loaded bool
}

func (c *counters) SaveKey() string { return c.key }

func (c *counters) ExposeData(s *save.Scribe) error {
	if err := save.Look(s, "name", &c.Name); err != nil {
		return err
	}
	if err := save.LookPairs(s, "entries", &c.Keys, &c.Values); err != nil {
		return err
	}
	c.loaded = s.Mode() == save.Loading
	return nil
}

type failing struct{}

func (failing) SaveKey() string               { return "failing" }
func (failing) ExposeData(*save.Scribe) error { return errors.New("boom") }

func TestEncodeDecodeRoundTrip(t *testing.T) {
	saved := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	out := &counters{key: "counters", Name: "pantry", Keys: []int{40, 3, 17}, Values: []string{"a", "b", "c"}}
	other := &counters{key: "other", Name: "empty", Keys: []int{}, Values: []string{}}

	var buf bytes.Buffer
	require.NoError(t, save.Encode(&buf, save.Header{World: "w-1", Tick: 99, SavedAt: saved}, out, other))

	in := &counters{key: "counters"}
	inOther := &counters{key: "other"}
	header, err := save.Decode(bytes.NewReader(buf.Bytes()), in, inOther)
	require.NoError(t, err)

	assert.Equal(t, save.FormatVersion, header.Format)
	assert.Equal(t, "w-1", header.World)
	assert.Equal(t, int64(99), header.Tick)
	assert.True(t, saved.Equal(header.SavedAt))

	assert.True(t, in.loaded)
	assert.Equal(t, "pantry", in.Name)
	assert.Equal(t, []int{40, 3, 17}, in.Keys)
	assert.Equal(t, []string{"a", "b", "c"}, in.Values)

	assert.Equal(t, "empty", inOther.Name)
	assert.NotNil(t, inOther.Keys)
	assert.Empty(t, inOther.Keys)
}

func TestDecodeMissingSectionYieldsEmptyPairs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, save.Encode(&buf, save.Header{World: "w"}))

	in := &counters{key: "counters", Name: "untouched"}
	_, err := save.Decode(&buf, in)
	require.NoError(t, err)

	assert.Equal(t, "untouched", in.Name)
	assert.NotNil(t, in.Keys)
	assert.NotNil(t, in.Values)
	assert.Empty(t, in.Keys)
}

func TestLookPairsRejectsMismatchOnSave(t *testing.T) {
	out := &counters{key: "counters", Keys: []int{1, 2}, Values: []string{"only one"}}
	err := save.Encode(&bytes.Buffer{}, save.Header{}, out)
	assert.ErrorIs(t, err, save.ErrPairMismatch)
}

func TestLookPairsRejectsCorruptDocuments(t *testing.T) {
	tests := []struct {
		name    string
		entries string
		want    error
	}{
		{"length mismatch", "{keys: [1, 2], values: [a]}", save.ErrPairMismatch},
		{"duplicate key", "{keys: [5, 5], values: [a, b]}", save.ErrDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "header: {format: 1, world: w}\nsections:\n  counters:\n    entries: " + tt.entries + "\n"
			_, err := save.Decode(strings.NewReader(doc), &counters{key: "counters"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeRejectsUnknownFormat(t *testing.T) {
	for _, doc := range []string{
		"sections: {}\n",
		"header: {format: 99}\nsections: {}\n",
	} {
		_, err := save.Decode(strings.NewReader(doc))
		assert.ErrorIs(t, err, save.ErrUnsupportedFormat)
	}
}

func TestEncodeRejectsDuplicateSections(t *testing.T) {
	err := save.Encode(&bytes.Buffer{}, save.Header{}, &counters{key: "x", Keys: []int{}, Values: []string{}}, &counters{key: "x"})
	assert.ErrorIs(t, err, save.ErrDuplicateSection)
}

func TestParticipantErrorsAreWrapped(t *testing.T) {
	err := save.Encode(&bytes.Buffer{}, save.Header{}, failing{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save section failing: boom")

	_, err = save.Decode(strings.NewReader("header: {format: 1}\n"), failing{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load section failing: boom")
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "saving", save.Saving.String())
	assert.Equal(t, "loading", save.Loading.String())
}
