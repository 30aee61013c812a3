package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePhrase() *PhraseDoc {
	return &PhraseDoc{
		Offset:     1.23456,
		Text:       []string{"AP", "小"},
		PhSeq:      []string{"AP", "x", "iao"},
		PhDur:      []float64{0.1, 0.15, 0.35},
		PhNum:      []int{1, 2},
		NoteSeq:    []string{"rest", "C4"},
		NoteDur:    []float64{0.1, 0.5},
		NoteSlur:   []bool{false, false},
		F0Seq:      []float64{0, 261.6256, 261.6256},
		F0Timestep: 0.005,
	}
}

func TestPhraseRecordFormatting(t *testing.T) {
	rec := samplePhrase().record()

	assert.Equal(t, json.Number("1.235"), rec.Offset)
	assert.Equal(t, "AP 小", rec.Text)
	assert.Equal(t, "AP x iao", rec.PhSeq)
	assert.Equal(t, "0.100 0.150 0.350", rec.PhDur)
	assert.Equal(t, "1 2", rec.PhNum)
	assert.Equal(t, "rest C4", rec.NoteSeq)
	assert.Equal(t, "0.100 0.500", rec.NoteDur)
	assert.Equal(t, "0 0", rec.NoteSlur)
	assert.Equal(t, "0.0 261.6 261.6", rec.F0Seq)
	assert.Equal(t, "0.005", rec.F0Timestep)
}

func TestMarshalDS(t *testing.T) {
	data, err := MarshalDS([]*PhraseDoc{samplePhrase()})
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 1.235, rec["offset"])
	assert.Equal(t, "AP x iao", rec["ph_seq"])
	assert.Equal(t, "0 0", rec["note_slur"])
	assert.Equal(t, "0.005", rec["f0_timestep"])
}

func TestMarshalDSEmpty(t *testing.T) {
	data, err := MarshalDS(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteDSFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ds")
	require.NoError(t, WriteDSFile(path, []*PhraseDoc{samplePhrase()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Len(t, records, 1)
}

func TestAppendUnitKeepsSequencesParallel(t *testing.T) {
	doc := &PhraseDoc{}
	doc.appendUnit("小", []string{"x", "iao"}, []float64{0.15, 0.35}, "C4", 0.5)
	doc.appendUnit("SP", []string{"SP"}, []float64{0.4}, "rest", 0.4)

	checkInvariants(t, doc)
	assert.Equal(t, []int{2, 1}, doc.PhNum)
}
