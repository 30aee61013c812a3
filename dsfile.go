package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// PhraseDoc is one breath-delimited phrase of the output document: parallel
// per-unit sequences plus the resampled pitch contour. PhSeq and PhDur are
// one-to-one; Text, NoteSeq, NoteDur, and NoteSlur are one-to-one per lexical
// unit, with PhNum recording how many phonemes each unit contributed.
type PhraseDoc struct {
	Offset     float64
	Text       []string
	PhSeq      []string
	PhDur      []float64
	PhNum      []int
	NoteSeq    []string
	NoteDur    []float64
	NoteSlur   []bool
	F0Seq      []float64
	F0Timestep float64
}

// appendUnit adds one lexical unit and its phoneme expansion to the phrase.
// Slur detection is out of scope, so the flag is always false.
func (d *PhraseDoc) appendUnit(text string, phonemes []string, phDurs []float64, note string, noteDur float64) {
	d.Text = append(d.Text, text)
	d.PhSeq = append(d.PhSeq, phonemes...)
	d.PhDur = append(d.PhDur, phDurs...)
	d.PhNum = append(d.PhNum, len(phonemes))
	d.NoteSeq = append(d.NoteSeq, note)
	d.NoteDur = append(d.NoteDur, noteDur)
	d.NoteSlur = append(d.NoteSlur, false)
}

// dsRecord is the serialized form of a phrase: sequence fields space-joined,
// durations and the timestep at 3-decimal precision.
type dsRecord struct {
	Offset     json.Number `json:"offset"`
	Text       string      `json:"text"`
	PhSeq      string      `json:"ph_seq"`
	PhDur      string      `json:"ph_dur"`
	PhNum      string      `json:"ph_num"`
	NoteSeq    string      `json:"note_seq"`
	NoteDur    string      `json:"note_dur"`
	NoteSlur   string      `json:"note_slur"`
	F0Seq      string      `json:"f0_seq"`
	F0Timestep string      `json:"f0_timestep"`
}

func joinFloats(values []float64, format string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf(format, v)
	}
	return strings.Join(parts, " ")
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func joinBools(values []bool) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v {
			parts[i] = "1"
		} else {
			parts[i] = "0"
		}
	}
	return strings.Join(parts, " ")
}

func (d *PhraseDoc) record() dsRecord {
	return dsRecord{
		Offset:     json.Number(fmt.Sprintf("%.3f", d.Offset)),
		Text:       strings.Join(d.Text, " "),
		PhSeq:      strings.Join(d.PhSeq, " "),
		PhDur:      joinFloats(d.PhDur, "%.3f"),
		PhNum:      joinInts(d.PhNum),
		NoteSeq:    strings.Join(d.NoteSeq, " "),
		NoteDur:    joinFloats(d.NoteDur, "%.3f"),
		NoteSlur:   joinBools(d.NoteSlur),
		F0Seq:      joinFloats(d.F0Seq, "%.1f"),
		F0Timestep: fmt.Sprintf("%.3f", d.F0Timestep),
	}
}

// MarshalDS serializes phrase documents as a DiffSinger .ds JSON array.
func MarshalDS(docs []*PhraseDoc) ([]byte, error) {
	records := make([]dsRecord, len(docs))
	for i, doc := range docs {
		records[i] = doc.record()
	}
	return json.MarshalIndent(records, "", "  ")
}

// WriteDSFile serializes phrase documents and writes them to filename. The
// document is marshaled fully before the file is created, so a serialization
// failure leaves no partial output behind.
func WriteDSFile(filename string, docs []*PhraseDoc) error {
	data, err := MarshalDS(docs)
	if err != nil {
		return fmt.Errorf("error serializing ds document: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("error writing ds file: %w", err)
	}
	return nil
}
