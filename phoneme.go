package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// PhonemeDict maps a syllable token to its ordered phoneme expansion. Entries
// hold one or two phonemes; larger expansions are rejected at load time since
// the duration splitter cannot apportion them.
type PhonemeDict map[string][]string

// WeightTable maps a phoneme to its nominal relative duration weight, used to
// split a syllable's duration across its phonemes. A short onset consonant
// carries less weight than the sustained vowel that follows it.
type WeightTable map[string]float64

// LoadPhonemeDict reads a dictionary file with one entry per line:
// syllable, a tab, then space-separated phonemes. Blank lines and lines
// starting with # are skipped.
func LoadPhonemeDict(filename string) (PhonemeDict, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening dictionary file: %w", err)
	}
	defer file.Close()

	dict := make(PhonemeDict)
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			// Tolerate space-separated files: first field is the syllable.
			parts = strings.SplitN(line, " ", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("dictionary line %d: malformed entry %q", lineNo, line)
			}
		}

		syllable := strings.TrimSpace(parts[0])
		phonemes := strings.Fields(parts[1])
		if len(phonemes) == 0 {
			return nil, fmt.Errorf("dictionary line %d: no phonemes for syllable %q", lineNo, syllable)
		}
		if len(phonemes) > 2 {
			return nil, fmt.Errorf("dictionary line %d: syllable %q: %w", lineNo, syllable, ErrUnsupportedPhonemeCount)
		}

		dict[syllable] = phonemes
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dictionary file: %w", err)
	}

	return dict, nil
}

// LoadWeightTable reads a phoneme weight file with one "phoneme weight" pair
// per line. Blank lines and # comments are skipped; weights must be positive.
func LoadWeightTable(filename string) (WeightTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening weight file: %w", err)
	}
	defer file.Close()

	weights := make(WeightTable)
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("weight line %d: malformed entry %q", lineNo, line)
		}

		weight, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("weight line %d: invalid weight %q: %w", lineNo, fields[1], err)
		}
		if weight <= 0 {
			return nil, fmt.Errorf("weight line %d: weight for %q must be positive, got %g", lineNo, fields[0], weight)
		}

		weights[fields[0]] = weight
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading weight file: %w", err)
	}

	return weights, nil
}

// weightOf looks up a phoneme's nominal weight, defaulting to 1.0 so a
// phoneme missing from the table splits evenly instead of failing.
func (w WeightTable) weightOf(phoneme string) float64 {
	if weight, ok := w[phoneme]; ok {
		return weight
	}
	return 1.0
}

// SplitDuration apportions a syllable's total duration across its phonemes by
// their relative nominal weights. A single phoneme takes the full duration;
// two phonemes split it as total*w_i/(w0+w1). More than two phonemes is a
// data error (also rejected at dictionary load).
func SplitDuration(phonemes []string, total float64, weights WeightTable) ([]float64, error) {
	switch len(phonemes) {
	case 0:
		return nil, ErrMissingDictionaryEntry
	case 1:
		return []float64{total}, nil
	case 2:
		w0 := weights.weightOf(phonemes[0])
		w1 := weights.weightOf(phonemes[1])
		sum := w0 + w1
		return []float64{total * w0 / sum, total * w1 / sum}, nil
	default:
		return nil, fmt.Errorf("%d phonemes: %w", len(phonemes), ErrUnsupportedPhonemeCount)
	}
}
