package main

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPhonemeCount is returned when a dictionary entry expands a
	// syllable into more than two phonemes, which the duration splitter cannot
	// apportion.
	ErrUnsupportedPhonemeCount = errors.New("syllable expands to more than two phonemes")

	// ErrMissingDictionaryEntry is returned when a syllable has no phoneme
	// dictionary entry and therefore cannot be split.
	ErrMissingDictionaryEntry = errors.New("syllable not found in phoneme dictionary")
)

// AlignmentErrorKind classifies how transcript/timeline reconciliation failed.
type AlignmentErrorKind int

const (
	// UnresolvableSyllable means the transcript requires a syllable the
	// remaining timeline cannot supply.
	UnresolvableSyllable AlignmentErrorKind = iota
	// SyllableMismatch means a timeline lyric tag carries real lyric content
	// that does not match the expected transcript syllable.
	SyllableMismatch
)

func (k AlignmentErrorKind) String() string {
	switch k {
	case UnresolvableSyllable:
		return "unresolvable syllable"
	case SyllableMismatch:
		return "syllable mismatch"
	default:
		return "unknown alignment error"
	}
}

// AlignmentError reports a transcript/performance mismatch with enough context
// to be actionable: the expected syllable token, the tag actually found (empty
// when the timeline simply ran out), and the tick position reached.
type AlignmentError struct {
	Kind     AlignmentErrorKind
	Expected string
	Found    string
	Tick     uint32
}

func (e *AlignmentError) Error() string {
	if e.Kind == SyllableMismatch {
		return fmt.Sprintf("%s at tick %d: expected syllable %q, found tag %q",
			e.Kind, e.Tick, e.Expected, e.Found)
	}
	return fmt.Sprintf("%s: syllable %q not found before end of timeline (tick %d)",
		e.Kind, e.Expected, e.Tick)
}
