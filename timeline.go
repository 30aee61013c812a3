package main

import (
	"sort"
)

// Pitch sentinels for TimelineEntry.Pitch. pitchRest covers both note-off
// events and note-on events with zero velocity; pitchNone means the entry
// carries no pitch transition at all (tempo-only or lyric-only ticks).
const (
	pitchNone int16 = -1
	pitchRest int16 = 0
)

// Short-pause and breath markers used in annotations and output documents.
const (
	shortPauseMark = "<SP>"
	breathMark     = "<AP>"
)

// annotationKind is the alignment state attached to a timeline entry. Entries
// start out unannotated; the aligner transitions them to silence, breath, or
// lyric states during its pass.
type annotationKind int

const (
	annotNone annotationKind = iota
	annotSilence
	annotBreath
	annotLyric
)

// TimelineEntry is one materialized point of the performance timeline: the
// tempo in effect, an optional pitch transition, an optional raw lyric tag
// from the source file, and the tick gap to the next entry. The final entry
// of a timeline always has Duration 0 (end of track, never rendered).
type TimelineEntry struct {
	Tick        uint32
	Tempo       uint32 // microseconds per beat
	Pitch       int16
	RawSyllable string
	Duration    uint32

	Annotation annotationKind
	Lyric      string   // literal transcript character, set for annotLyric
	Syllable   string   // matched syllable token, set for annotLyric
	Phonemes   []string // dictionary expansion, nil when the syllable is unknown
}

// IsSilent reports whether the entry represents a rest.
func (e *TimelineEntry) IsSilent() bool {
	return e.Pitch == pitchRest
}

// StartSeconds converts the entry's tick position to seconds using its own
// effective tempo.
func (e *TimelineEntry) StartSeconds(ticksPerBeat float64) float64 {
	return float64(e.Tick) * float64(e.Tempo) / 1e6 / ticksPerBeat
}

// DurationSeconds converts the entry's tick duration to seconds using its own
// effective tempo.
func (e *TimelineEntry) DurationSeconds(ticksPerBeat float64) float64 {
	return float64(e.Duration) * float64(e.Tempo) / 1e6 / ticksPerBeat
}

// defaultTempo applies to entries before the first tempo event (120 BPM).
const defaultTempo uint32 = 500000

// BuildTimeline merges tick-stamped note, tempo, and lyric event lists into a
// single time-ordered entry sequence. Events sharing a tick fold into one
// entry: the tempo at a tick is the last value seen there, pitch and syllable
// are set independently and never cleared by absence. Tempo applies forward
// monotonically, so every entry carries the tempo in effect at its tick.
func BuildTimeline(notes []NoteEvent, tempos []TempoEvent, lyrics []LyricEvent) []*TimelineEntry {
	byTick := make(map[uint32]*TimelineEntry)

	at := func(tick uint32) *TimelineEntry {
		entry, ok := byTick[tick]
		if !ok {
			entry = &TimelineEntry{Tick: tick, Pitch: pitchNone}
			byTick[tick] = entry
		}
		return entry
	}

	for _, ev := range tempos {
		// Last write at a tick wins; the effective tempo is carried
		// forward to later entries below.
		at(ev.Tick).Tempo = ev.MicrosPerBeat
	}

	for _, ev := range notes {
		entry := at(ev.Tick)
		if ev.Velocity == 0 {
			entry.Pitch = pitchRest
		} else {
			entry.Pitch = int16(ev.Key)
		}
	}

	for _, ev := range lyrics {
		at(ev.Tick).RawSyllable = ev.Text
	}

	entries := make([]*TimelineEntry, 0, len(byTick))
	for _, entry := range byTick {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Tick < entries[j].Tick
	})

	tempo := defaultTempo
	for i, entry := range entries {
		if entry.Tempo != 0 {
			tempo = entry.Tempo
		} else {
			entry.Tempo = tempo
		}

		if i+1 < len(entries) {
			entry.Duration = entries[i+1].Tick - entry.Tick
		} else {
			entry.Duration = 0 // end of track
		}
	}

	return entries
}
