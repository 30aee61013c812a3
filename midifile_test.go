package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// writeTestMidi builds a one-track annotated SMF on disk: tempo 120, a sung
// note tagged "xiao3", then a note-off.
func writeTestMidi(t *testing.T) string {
	t.Helper()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)

	var track smf.Track
	track.Add(0, smf.MetaTempo(120))
	track.Add(0, smf.MetaLyric("xiao3"))
	track.Add(0, smf.Message(midi.NoteOn(0, 60, 100)))
	track.Add(480, smf.Message(midi.NoteOff(0, 60)))
	track.Close(0)
	require.NoError(t, s.Add(track))

	path := filepath.Join(t.TempDir(), "test.mid")
	require.NoError(t, s.WriteFile(path))
	return path
}

func TestReadPerformance(t *testing.T) {
	path := writeTestMidi(t)

	perf, err := ReadPerformance(path)
	require.NoError(t, err)

	assert.Equal(t, 480.0, perf.TicksPerBeat)

	require.Len(t, perf.Notes, 2)
	assert.Equal(t, NoteEvent{Tick: 0, Key: 60, Velocity: 100}, perf.Notes[0])
	assert.Equal(t, NoteEvent{Tick: 480, Key: 60, Velocity: 0}, perf.Notes[1], "note-off maps to velocity 0")

	require.Len(t, perf.Tempos, 1)
	assert.Equal(t, uint32(0), perf.Tempos[0].Tick)
	assert.Equal(t, uint32(500000), perf.Tempos[0].MicrosPerBeat)

	require.Len(t, perf.Lyrics, 1)
	assert.Equal(t, LyricEvent{Tick: 0, Text: "xiao3"}, perf.Lyrics[0])
}

func TestReadPerformanceMissingFile(t *testing.T) {
	_, err := ReadPerformance(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)
}

func TestReadPerformanceSkipsOutOfRangeNotes(t *testing.T) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)

	var track smf.Track
	track.Add(0, smf.MetaTempo(120))
	track.Add(0, smf.Message(midi.NoteOn(0, 12, 100))) // beat marker, not a vocal
	track.Add(0, smf.Message(midi.NoteOn(0, 60, 100)))
	track.Add(480, smf.Message(midi.NoteOff(0, 60)))
	track.Close(0)
	require.NoError(t, s.Add(track))

	path := filepath.Join(t.TempDir(), "range.mid")
	require.NoError(t, s.WriteFile(path))

	perf, err := ReadPerformance(path)
	require.NoError(t, err)

	require.Len(t, perf.Notes, 2)
	for _, note := range perf.Notes {
		assert.Equal(t, uint8(60), note.Key)
	}
}
