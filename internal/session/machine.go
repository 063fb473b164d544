package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/cmdrush/cmdrush/internal/model"
)

// Transition describes one phase change.
type Transition struct {
	From Phase
	To   Phase
}

// Hook observes phase changes.
type Hook func(Transition)

// Machine holds the single mutable State and notifies a hook on every
// transition. Without a hook, transitions are logged and nothing else.
type Machine struct {
	state  State
	hook   Hook
	logger *zap.Logger
}

// NewMachine returns a Machine in the loading phase.
func NewMachine(logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{state: NewState(), logger: logger}
}

// SetHook registers the transition observer. A nil hook restores the
// logging default.
func (m *Machine) SetHook(hook Hook) {
	m.hook = hook
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

func (m *Machine) apply(next State, err error) error {
	if err != nil {
		m.logger.Warn("rejected transition",
			zap.String("from", m.state.Phase.String()),
			zap.Error(err))
		return err
	}
	tr := Transition{From: m.state.Phase, To: next.Phase}
	m.state = next
	if m.hook != nil {
		m.hook(tr)
		return nil
	}
	m.logger.Info("phase change",
		zap.String("from", tr.From.String()),
		zap.String("to", tr.To.String()),
		zap.String("round", next.RoundID))
	return nil
}

// Ready moves loading to title.
func (m *Machine) Ready() error {
	next, err := Ready(m.state)
	return m.apply(next, err)
}

// Start begins a round with the given countdown duration.
func (m *Machine) Start(duration time.Duration) error {
	next, err := Start(m.state, duration)
	return m.apply(next, err)
}

// Finish ends the running round.
func (m *Machine) Finish() error {
	next, err := Finish(m.state)
	return m.apply(next, err)
}

// Reset returns to the title screen.
func (m *Machine) Reset() error {
	next, err := Reset(m.state)
	return m.apply(next, err)
}

// Apply folds a match result into the state.
func (m *Machine) Apply(res model.MatchResult) {
	m.state = Apply(m.state, res)
}

// Tick advances the countdown and reports whether it expired.
func (m *Machine) Tick(delta time.Duration) bool {
	next, timedOut := Tick(m.state, delta)
	m.state = next
	return timedOut
}
