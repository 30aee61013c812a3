package main

import (
	"fmt"
	"math"
)

// Output tokens for non-pitched content.
const (
	restNote      = "rest"
	breathPhoneme = "AP"
	pausePhoneme  = "SP"
)

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// noteName converts a MIDI key number to its pitch name, middle C (60) = C4.
func noteName(key int16) string {
	return fmt.Sprintf("%s%d", noteNames[key%12], key/12-1)
}

// noteFrequency converts a MIDI key number to Hz (A4 = 440).
func noteFrequency(key int16) float64 {
	return 440.0 * math.Pow(2, float64(key-69)/12.0)
}

// Assembler segments an aligned timeline at breath boundaries into phrase
// documents, accumulating the parallel per-unit sequences and resampling the
// note sequence into a fixed-timestep pitch contour.
type Assembler struct {
	weights      WeightTable
	ticksPerBeat float64
	timestep     float64 // pitch-curve sample interval in seconds
}

// NewAssembler returns an assembler using the given phoneme weight table,
// timeline tick resolution, and pitch-curve timestep.
func NewAssembler(weights WeightTable, ticksPerBeat, timestep float64) *Assembler {
	return &Assembler{weights: weights, ticksPerBeat: ticksPerBeat, timestep: timestep}
}

// Assemble performs one forward pass over the annotated timeline and returns
// the phrase documents in order. Entries without an annotation were consumed
// as intermediate content during alignment and are skipped. A breath entry
// closes the open phrase and starts the next one; silence ahead of any phrase
// is dropped; a pitched lyric entry opens a phrase when none is open.
func (a *Assembler) Assemble(entries []*TimelineEntry) ([]*PhraseDoc, error) {
	var docs []*PhraseDoc
	var current *PhraseDoc

	flush := func() {
		// Empty accumulators never produce a document.
		if current != nil && len(current.Text) > 0 {
			docs = append(docs, current)
		}
		current = nil
	}

	for _, entry := range entries {
		secs := entry.DurationSeconds(a.ticksPerBeat)

		switch entry.Annotation {
		case annotNone:
			continue

		case annotBreath:
			flush()
			current = a.newPhrase(entry)
			current.appendUnit(breathPhoneme, []string{breathPhoneme}, []float64{secs}, restNote, secs)
			a.appendSamples(current, 0, secs)

		case annotSilence:
			if current == nil {
				continue // leading silence before the first phrase
			}
			current.appendUnit(pausePhoneme, []string{pausePhoneme}, []float64{secs}, restNote, secs)
			a.appendSamples(current, 0, secs)

		case annotLyric:
			if entry.Pitch <= pitchRest {
				// A lyric landed on a rest: keep the text but emit it as a
				// pause with no pitch.
				if current == nil {
					continue
				}
				current.appendUnit(entry.Lyric, []string{pausePhoneme}, []float64{secs}, restNote, secs)
				a.appendSamples(current, 0, secs)
				continue
			}

			if current == nil {
				current = a.newPhrase(entry)
			}

			phonemes := entry.Phonemes
			if len(phonemes) == 0 {
				// No dictionary expansion: the raw syllable token stands in
				// as a single phoneme spanning the full duration.
				phonemes = []string{entry.Syllable}
			}
			phDurs, err := SplitDuration(phonemes, secs, a.weights)
			if err != nil {
				return nil, fmt.Errorf("syllable %q at tick %d: %w", entry.Syllable, entry.Tick, err)
			}

			current.appendUnit(entry.Lyric, phonemes, phDurs, noteName(entry.Pitch), secs)
			a.appendSamples(current, noteFrequency(entry.Pitch), secs)
		}
	}

	flush()
	return docs, nil
}

func (a *Assembler) newPhrase(entry *TimelineEntry) *PhraseDoc {
	return &PhraseDoc{
		Offset:     entry.StartSeconds(a.ticksPerBeat),
		F0Timestep: a.timestep,
	}
}

// appendSamples resamples one entry's span onto the phrase's fixed-timestep
// pitch curve.
func (a *Assembler) appendSamples(doc *PhraseDoc, freq, secs float64) {
	repeats := int(math.Round(secs / a.timestep))
	for i := 0; i < repeats; i++ {
		doc.F0Seq = append(doc.F0Seq, freq)
	}
}
