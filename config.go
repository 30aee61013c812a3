package main

import (
	"os"
	"strconv"
)

// Config holds the per-run conversion settings. Breath duration and pitch
// timestep are fixed for a whole run, never per phrase.
type Config struct {
	BreathMs    float64 // duration of inserted breath entries, milliseconds
	F0Timestep  float64 // pitch-curve sample interval, seconds
	DictPath    string  // phoneme dictionary file
	WeightsPath string  // phoneme duration-weight file
}

// LoadConfig reads configuration from the environment with defaults. Flags in
// main override these values.
func LoadConfig() *Config {
	return &Config{
		BreathMs:    getEnvFloat("MIDI2DS_BREATH_MS", 100.0),
		F0Timestep:  getEnvFloat("MIDI2DS_F0_TIMESTEP", 0.005),
		DictPath:    getEnv("MIDI2DS_DICT", "dict.txt"),
		WeightsPath: getEnv("MIDI2DS_WEIGHTS", "weights.txt"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
