package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env alongside the binary; absence is fine.
	_ = godotenv.Load()

	cfg := LoadConfig()

	transcriptPath := flag.String("transcript", "", "Pre-romanized transcript file (char|syllable pairs, one sentence per line)")
	lyricsPath := flag.String("lyrics", "", "Raw lyric text file to romanize (one sentence per line)")
	dictPath := flag.String("dict", cfg.DictPath, "Phoneme dictionary file")
	weightsPath := flag.String("weights", cfg.WeightsPath, "Phoneme duration-weight file")
	outPath := flag.String("out", "", "Output .ds file (single-file mode) or directory (batch mode)")
	breathMs := flag.Float64("breath-ms", cfg.BreathMs, "Inserted breath duration in milliseconds")
	timestep := flag.Float64("timestep", cfg.F0Timestep, "Pitch-curve timestep in seconds")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <midi file or directory>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg.BreathMs = *breathMs
	cfg.F0Timestep = *timestep

	if *transcriptPath == "" && *lyricsPath == "" {
		log.Printf("Either -transcript or -lyrics is required")
		os.Exit(1)
	}

	transcript, err := loadTranscriptInput(*transcriptPath, *lyricsPath)
	if err != nil {
		log.Printf("Error loading transcript: %v", err)
		os.Exit(1)
	}

	dict, err := LoadPhonemeDict(*dictPath)
	if err != nil {
		log.Printf("Error loading phoneme dictionary: %v", err)
		os.Exit(1)
	}

	weights, err := LoadWeightTable(*weightsPath)
	if err != nil {
		log.Printf("Error loading weight table: %v", err)
		os.Exit(1)
	}

	input := flag.Arg(0)
	info, err := os.Stat(input)
	if err != nil {
		log.Printf("Error reading input: %v", err)
		os.Exit(1)
	}

	if info.IsDir() {
		if err := convertBatch(input, *outPath, transcript, dict, weights, cfg); err != nil {
			log.Printf("Batch conversion failed: %v", err)
			os.Exit(1)
		}
		return
	}

	out := *outPath
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".ds"
	}
	if err := ConvertFile(input, out, transcript, dict, weights, cfg); err != nil {
		log.Printf("Conversion failed: %v", err)
		os.Exit(1)
	}
}

func loadTranscriptInput(transcriptPath, lyricsPath string) (Transcript, error) {
	if transcriptPath != "" {
		return LoadTranscript(transcriptPath)
	}
	return LoadRawLyrics(lyricsPath)
}

// ConvertFile runs the full pipeline for one MIDI file: read events, build
// the timeline, align against the transcript, assemble phrases, and write the
// .ds document. A fatal error at any stage leaves no output file behind.
func ConvertFile(midiPath, outPath string, transcript Transcript, dict PhonemeDict, weights WeightTable, cfg *Config) error {
	perf, err := ReadPerformance(midiPath)
	if err != nil {
		return err
	}

	entries := BuildTimeline(perf.Notes, perf.Tempos, perf.Lyrics)

	aligner := NewAligner(dict, cfg.BreathMs, perf.TicksPerBeat)
	aligned, err := aligner.Align(entries, transcript)
	if err != nil {
		return fmt.Errorf("alignment failed for %s: %w", midiPath, err)
	}

	assembler := NewAssembler(weights, perf.TicksPerBeat, cfg.F0Timestep)
	docs, err := assembler.Assemble(aligned)
	if err != nil {
		return fmt.Errorf("assembly failed for %s: %w", midiPath, err)
	}

	if err := WriteDSFile(outPath, docs); err != nil {
		return err
	}

	log.Printf("Wrote %d phrases to %s", len(docs), outPath)
	return nil
}

// convertBatch converts every .mid file in a directory. A file that fails to
// convert is reported and skipped; the batch keeps going.
func convertBatch(dir, outDir string, transcript Transcript, dict PhonemeDict, weights WeightTable, cfg *Config) error {
	if outDir == "" {
		outDir = dir
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.mid"))
	if err != nil {
		return fmt.Errorf("error listing MIDI files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .mid files found in %s", dir)
	}

	failed := 0
	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		out := filepath.Join(outDir, base+".ds")

		log.Printf("Processing %s...", file)
		if err := ConvertFile(file, out, transcript, dict, weights, cfg); err != nil {
			log.Printf("Skipping %s: %v", file, err)
			failed++
		}
	}

	log.Printf("Converted %d/%d files", len(files)-failed, len(files))
	return nil
}
