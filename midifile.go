package main

import (
	"fmt"
	"log"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Vocal melody notes live in the C1-C5 range (36-84); anything outside is a
// chart marker, not a sung pitch.
const (
	vocalRangeLow  uint8 = 36
	vocalRangeHigh uint8 = 84
)

// NoteEvent is a pitch transition: a note-on with its velocity, or a note-off
// reported as velocity 0.
type NoteEvent struct {
	Tick     uint32
	Key      uint8
	Velocity uint8
}

// TempoEvent is a tempo change in microseconds per beat.
type TempoEvent struct {
	Tick          uint32
	MicrosPerBeat uint32
}

// LyricEvent is a raw syllable tag attached to a tick.
type LyricEvent struct {
	Tick uint32
	Text string
}

// Performance holds the decoded event lists of one annotated MIDI file, all
// tick-stamped against a single resolution.
type Performance struct {
	Notes        []NoteEvent
	Tempos       []TempoEvent
	Lyrics       []LyricEvent
	TicksPerBeat float64
}

// ReadPerformance decodes an annotated MIDI file into tick-stamped note,
// tempo, and lyric event lists. Note-off events and note-on events with zero
// velocity both become velocity-0 NoteEvents. Lyric text comes from MetaLyric
// events, falling back to MetaText events that aren't bracketed animation
// markers.
func ReadPerformance(filename string) (*Performance, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening MIDI file: %w", err)
	}
	defer file.Close()

	smfData, err := smf.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("error reading MIDI file: %w", err)
	}

	ticksPerBeat, ok := smfData.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format, expected MetricTicks")
	}

	perf := &Performance{TicksPerBeat: float64(ticksPerBeat)}

	for _, track := range smfData.Tracks {
		var currentTime uint32

		for _, event := range track {
			currentTime += event.Delta
			msg := event.Message

			var ch, key, vel uint8
			var bpm float64
			var lyric, text string

			switch {
			case msg.GetNoteOn(&ch, &key, &vel):
				if key < vocalRangeLow || key > vocalRangeHigh {
					log.Printf("Warning: skipping note %d at tick %d outside vocal range (36-84)", key, currentTime)
					continue
				}
				perf.Notes = append(perf.Notes, NoteEvent{Tick: currentTime, Key: key, Velocity: vel})
			case msg.GetNoteOff(&ch, &key, &vel):
				if key < vocalRangeLow || key > vocalRangeHigh {
					continue
				}
				perf.Notes = append(perf.Notes, NoteEvent{Tick: currentTime, Key: key, Velocity: 0})
			case msg.GetMetaTempo(&bpm):
				perf.Tempos = append(perf.Tempos, TempoEvent{
					Tick:          currentTime,
					MicrosPerBeat: uint32(60000000.0 / bpm),
				})
			case msg.GetMetaLyric(&lyric):
				perf.Lyrics = append(perf.Lyrics, LyricEvent{Tick: currentTime, Text: lyric})
			case msg.GetMetaText(&text):
				// Skip bracketed animation markers, look for actual lyrics
				if len(text) > 0 && text[0] != '[' {
					perf.Lyrics = append(perf.Lyrics, LyricEvent{Tick: currentTime, Text: text})
				}
			}
		}
	}

	log.Printf("Read %d note events, %d tempo events, %d lyric tags from %s",
		len(perf.Notes), len(perf.Tempos), len(perf.Lyrics), filename)

	return perf, nil
}
