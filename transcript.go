package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mozillazg/go-pinyin"
)

// SyllablePair is one lyric unit of a sentence: the literal character and its
// romanized syllable token used as the alignment key.
type SyllablePair struct {
	Char     string
	Syllable string
}

// Sentence is an ordered run of lyric units sung between breaths.
type Sentence []SyllablePair

// Transcript is the sentence/syllable structure of the song text. It is
// read-only input to alignment.
type Transcript []Sentence

// LoadTranscript reads a pre-romanized transcript: one sentence per line,
// whitespace-separated char|syllable pairs, e.g.
//
//	小|xiao3 鸟|niao3
//
// Blank lines and # comments are skipped.
func LoadTranscript(filename string) (Transcript, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening transcript file: %w", err)
	}
	defer file.Close()

	var transcript Transcript
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var sentence Sentence
		for _, token := range strings.Fields(line) {
			parts := strings.SplitN(token, "|", 2)
			if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				return nil, fmt.Errorf("transcript line %d: malformed pair %q", lineNo, token)
			}
			sentence = append(sentence, SyllablePair{Char: parts[0], Syllable: parts[1]})
		}

		if len(sentence) > 0 {
			transcript = append(transcript, sentence)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading transcript file: %w", err)
	}

	return transcript, nil
}

// RomanizeText converts raw lyric text (one sentence per line) into a
// transcript by romanizing each character with numbered tones (xiao3 style).
// Characters go-pinyin cannot convert are dropped with a note, so punctuation
// in the source text doesn't become a bogus alignment key.
func RomanizeText(text string) Transcript {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone3

	var transcript Transcript

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var sentence Sentence
		for _, r := range line {
			if r == ' ' || r == '\t' {
				continue
			}
			pys := pinyin.SinglePinyin(r, args)
			if len(pys) == 0 {
				continue
			}
			syllable := pys[0]
			// Neutral-tone syllables come back without a digit; pad with
			// tone 5 so tokens match the dictionary convention.
			if !strings.ContainsAny(syllable, "12345") {
				syllable += "5"
			}
			sentence = append(sentence, SyllablePair{Char: string(r), Syllable: syllable})
		}

		if len(sentence) > 0 {
			transcript = append(transcript, sentence)
		}
	}

	return transcript
}

// LoadRawLyrics reads a plain lyric text file and romanizes it into a
// transcript.
func LoadRawLyrics(filename string) (Transcript, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening lyrics file: %w", err)
	}
	return RomanizeText(string(data)), nil
}

// SyllableCount returns the total number of lyric units in the transcript.
func (t Transcript) SyllableCount() int {
	count := 0
	for _, sentence := range t {
		count += len(sentence)
	}
	return count
}
