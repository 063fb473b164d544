// Package session tracks game phase, countdown, and score.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cmdrush/cmdrush/internal/model"
)

// Phase is the game phase.
type Phase int

// Game phases, in lifecycle order.
const (
	PhaseLoading Phase = iota
	PhaseTitle
	PhasePlay
	PhaseEnd
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseTitle:
		return "title"
	case PhasePlay:
		return "play"
	case PhaseEnd:
		return "end"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the full game state. Transition functions take a State by value
// and return the next one; the UI layer holds the single mutable instance.
type State struct {
	Phase         Phase
	RoundID       string
	StartedAt     time.Time
	Remaining     time.Duration
	Score         int
	TotalCommands int
	TotalChars    int
	PerLanguage   map[string]int
	TypingEnabled bool
}

// NewState returns the initial state: loading, typing disabled, zero counters.
func NewState() State {
	return State{Phase: PhaseLoading, PerLanguage: map[string]int{}}
}

var legalTransitions = map[Phase][]Phase{
	PhaseLoading: {PhaseTitle},
	PhaseTitle:   {PhasePlay},
	PhasePlay:    {PhaseEnd},
	PhaseEnd:     {PhaseTitle, PhasePlay},
}

func canTransition(from, to Phase) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func transitionErr(from, to Phase) error {
	return fmt.Errorf("illegal transition %s -> %s", from, to)
}

// Ready moves loading to title once the dictionary is available.
func Ready(s State) (State, error) {
	if !canTransition(s.Phase, PhaseTitle) {
		return s, transitionErr(s.Phase, PhaseTitle)
	}
	s.Phase = PhaseTitle
	s.TypingEnabled = false
	return s, nil
}

// Start begins a round: fresh round ID, zeroed counters, running countdown.
func Start(s State, duration time.Duration) (State, error) {
	if !canTransition(s.Phase, PhasePlay) {
		return s, transitionErr(s.Phase, PhasePlay)
	}
	s.Phase = PhasePlay
	s.RoundID = uuid.NewString()
	s.StartedAt = time.Now()
	s.Remaining = duration
	s.Score = 0
	s.TotalCommands = 0
	s.TotalChars = 0
	s.PerLanguage = map[string]int{}
	s.TypingEnabled = true
	return s, nil
}

// Finish ends the round and freezes counters for display.
func Finish(s State) (State, error) {
	if !canTransition(s.Phase, PhaseEnd) {
		return s, transitionErr(s.Phase, PhaseEnd)
	}
	s.Phase = PhaseEnd
	s.Remaining = 0
	s.TypingEnabled = false
	return s, nil
}

// Reset returns from the end screen to the title, keeping the frozen
// counters visible until the next Start.
func Reset(s State) (State, error) {
	if !canTransition(s.Phase, PhaseTitle) {
		return s, transitionErr(s.Phase, PhaseTitle)
	}
	s.Phase = PhaseTitle
	s.TypingEnabled = false
	return s, nil
}

// Apply folds a match result into the score and counters. A command listed
// under several languages counts once for each of them on a single Enter.
func Apply(s State, res model.MatchResult) State {
	if s.Phase != PhasePlay || !s.TypingEnabled {
		return s
	}
	if !res.Matched {
		return s
	}
	counts := make(map[string]int, len(s.PerLanguage))
	for lang, n := range s.PerLanguage {
		counts[lang] = n
	}
	for _, lang := range res.Languages {
		counts[lang]++
	}
	s.PerLanguage = counts
	s.TotalCommands++
	s.TotalChars += len([]rune(res.Command))
	s.Score += len([]rune(res.Command)) * len(res.Languages)
	return s
}

// Tick advances the countdown by delta and reports whether it expired.
// The caller decides when to Finish.
func Tick(s State, delta time.Duration) (State, bool) {
	if s.Phase != PhasePlay {
		return s, false
	}
	s.Remaining -= delta
	if s.Remaining <= 0 {
		s.Remaining = 0
		return s, true
	}
	return s, false
}

// Stats returns a frozen copy of the round counters.
func (s State) Stats() model.RoundStats {
	counts := make(map[string]int, len(s.PerLanguage))
	for lang, n := range s.PerLanguage {
		counts[lang] = n
	}
	endedAt := time.Now()
	durationMs := int64(0)
	if !s.StartedAt.IsZero() {
		durationMs = endedAt.Sub(s.StartedAt).Milliseconds()
	}
	return model.RoundStats{
		RoundID:       s.RoundID,
		StartedAt:     s.StartedAt,
		EndedAt:       endedAt,
		Score:         s.Score,
		TotalCommands: s.TotalCommands,
		TotalChars:    s.TotalChars,
		PerLanguage:   counts,
		DurationMs:    durationMs,
	}
}
