// Package model defines shared data structures.
package model

import "time"

// Config defines game settings.
type Config struct {
	Langs          []string
	Duration       time.Duration
	GoldenMaxLen   int
	GoldenCount    int
	DictionaryPath string
}

// MatchResult describes the outcome of matching one typed line.
type MatchResult struct {
	Input     string
	Matched   bool
	Command   string
	Languages []string
}

// RoundStats captures a completed game round.
type RoundStats struct {
	RoundID       string
	StartedAt     time.Time
	EndedAt       time.Time
	Score         int
	TotalCommands int
	TotalChars    int
	PerLanguage   map[string]int
	DurationMs    int64
}
