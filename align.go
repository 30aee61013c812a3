package main

import (
	"log"
)

// fillerSyllable marks a "sustain the previous syllable" tag in the source
// file. It carries no lexical content of its own; the tagged entry is dropped
// so its span is absorbed by the surrounding timeline.
const fillerSyllable = "+"

// Aligner reconciles the sentence/syllable transcript with the performance
// timeline. It owns the entry sequence for the duration of its single pass.
type Aligner struct {
	dict         PhonemeDict
	breathMs     float64
	ticksPerBeat float64
}

// NewAligner returns an aligner using the given phoneme dictionary, breath
// duration in milliseconds, and timeline tick resolution.
func NewAligner(dict PhonemeDict, breathMs float64, ticksPerBeat float64) *Aligner {
	return &Aligner{dict: dict, breathMs: breathMs, ticksPerBeat: ticksPerBeat}
}

// breathTicks converts the configured breath duration to ticks at the given
// tempo.
func (a *Aligner) breathTicks(tempo uint32) uint32 {
	return uint32(a.breathMs * 1000.0 / float64(tempo) * a.ticksPerBeat)
}

// Align walks the transcript against the timeline in lockstep and returns a
// new annotated entry sequence. Unmatched silent entries become short pauses,
// filler tags are dropped, and sentence boundaries promote long enough
// preceding silence into a fixed-duration breath entry. The input slice is
// not reordered; the returned slice is the alignment result.
//
// Alignment fails when the transcript requires a syllable the remaining
// timeline cannot supply, or when the timeline carries a lyric tag that is
// neither the expected syllable nor a filler.
func (a *Aligner) Align(entries []*TimelineEntry, transcript Transcript) ([]*TimelineEntry, error) {
	out := make([]*TimelineEntry, 0, len(entries))
	cursor := 0

	for sentenceIdx, sentence := range transcript {
		for syllableIdx, pair := range sentence {
			// Advance to the entry tagged with the expected syllable,
			// cleaning up everything skipped on the way.
			for cursor < len(entries) && entries[cursor].RawSyllable != pair.Syllable {
				entry := entries[cursor]

				switch {
				case entry.RawSyllable == fillerSyllable:
					// Hold marker: drop the entry entirely.
					cursor++
				case entry.RawSyllable != "":
					return nil, &AlignmentError{
						Kind:     SyllableMismatch,
						Expected: pair.Syllable,
						Found:    entry.RawSyllable,
						Tick:     entry.Tick,
					}
				default:
					entry.Annotation = annotNone
					entry.Lyric = ""
					entry.Syllable = ""
					entry.Phonemes = nil
					if entry.IsSilent() {
						entry.Annotation = annotSilence
						entry.Lyric = shortPauseMark
						entry.Syllable = shortPauseMark
					}
					out = append(out, entry)
					cursor++
				}
			}

			if cursor >= len(entries) {
				var lastTick uint32
				if len(entries) > 0 {
					lastTick = entries[len(entries)-1].Tick
				}
				return nil, &AlignmentError{
					Kind:     UnresolvableSyllable,
					Expected: pair.Syllable,
					Tick:     lastTick,
				}
			}

			// A new sentence after a long rest gets a breath carved out of
			// the tail of that rest.
			if syllableIdx == 0 && sentenceIdx > 0 && len(out) > 0 {
				if prev := out[len(out)-1]; prev.Annotation == annotSilence {
					breath := a.breathTicks(prev.Tempo)
					if breath > 0 && prev.Duration > breath {
						prev.Duration -= breath
						out = append(out, &TimelineEntry{
							Tick:       prev.Tick + prev.Duration,
							Tempo:      prev.Tempo,
							Pitch:      pitchRest,
							Duration:   breath,
							Annotation: annotBreath,
							Lyric:      breathMark,
							Syllable:   breathMark,
						})
					}
				}
			}

			matched := entries[cursor]
			matched.Annotation = annotLyric
			matched.Lyric = pair.Char
			matched.Syllable = pair.Syllable
			if phonemes, ok := a.dict[pair.Syllable]; ok {
				matched.Phonemes = phonemes
			} else {
				matched.Phonemes = nil
				log.Printf("Warning: syllable %q at tick %d has no dictionary entry", pair.Syllable, matched.Tick)
			}
			out = append(out, matched)
			cursor++
		}
	}

	// Entries past the last transcript syllable keep their default state;
	// the assembler skips anything unannotated.
	for ; cursor < len(entries); cursor++ {
		out = append(out, entries[cursor])
	}

	return out, nil
}
