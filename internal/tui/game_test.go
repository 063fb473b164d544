package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cmdrush/cmdrush/internal/dictionary"
	"github.com/cmdrush/cmdrush/internal/model"
	"github.com/cmdrush/cmdrush/internal/session"
)

func playModel(t *testing.T) *Model {
	t.Helper()
	cfg := model.Config{
		Duration:     time.Minute,
		GoldenMaxLen: 7,
		GoldenCount:  5,
	}
	m := NewModel(cfg, nil)
	dict, err := dictionary.Load()
	if err != nil {
		t.Fatalf("failed to load dictionary: %v", err)
	}
	if _, _ = m.Update(dictLoadedMsg{dict: dict}); m.machine.State().Phase != session.PhaseTitle {
		t.Fatalf("expected title after dictionary load, got %s", m.machine.State().Phase)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.machine.State().Phase != session.PhasePlay {
		t.Fatalf("expected play after start, got %s", m.machine.State().Phase)
	}
	return m
}

func typeString(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestTypeMatchedCommand(t *testing.T) {
	m := playModel(t)
	typeString(m, "ls")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	state := m.machine.State()
	if state.TotalCommands != 1 {
		t.Fatalf("expected one matched command, got %d", state.TotalCommands)
	}
	if state.Score != 2 {
		t.Fatalf("expected score 2, got %d", state.Score)
	}
	if state.PerLanguage["bash"] != 1 {
		t.Fatalf("expected bash counter incremented: %v", state.PerLanguage)
	}
	if len(m.buffer) == 0 || m.buffer[len(m.buffer)-1] != '\n' {
		t.Fatalf("expected the line break appended after the line")
	}
	if m.cursor != len(m.buffer) {
		t.Fatalf("expected cursor at end of buffer after enter")
	}
}

func TestTrailingLineIsWholeLine(t *testing.T) {
	m := playModel(t)
	// "log" is a dictionary entry; "console.log" is not. Matching runs on
	// the full trimmed trailing line, never on a trailing token.
	typeString(m, "console.log")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	state := m.machine.State()
	if state.TotalCommands != 0 || state.Score != 0 {
		t.Fatalf("console.log must not match: %+v", state)
	}
	typeString(m, "log")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.machine.State().TotalCommands != 1 {
		t.Fatalf("expected log to match after console.log failed")
	}
}

func TestSpaceAndTabRejected(t *testing.T) {
	m := playModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if len(m.buffer) != 0 {
		t.Fatalf("expected empty buffer, got %q", string(m.buffer))
	}
}

func TestBackspaceCannotCrossLineBreak(t *testing.T) {
	m := playModel(t)
	typeString(m, "ls")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	before := len(m.buffer)
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.buffer) != before {
		t.Fatalf("backspace crossed the line break")
	}
	typeString(m, "a")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.buffer) != before {
		t.Fatalf("backspace within the line must work")
	}
}

func TestLeftArrowStopsAtLineStart(t *testing.T) {
	m := playModel(t)
	typeString(m, "ls")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeString(m, "cd")
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	cursorAtLineStart := m.cursor
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursor != cursorAtLineStart {
		t.Fatalf("left arrow crossed the line break")
	}
}

func TestControlChordSuppressed(t *testing.T) {
	m := playModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if len(m.buffer) != 0 {
		t.Fatalf("control chord must not reach the buffer")
	}
	typeString(m, "a")
	if string(m.buffer) != "a" {
		t.Fatalf("latch must be released after the chord, got %q", string(m.buffer))
	}
}

func TestCountdownFinishesRound(t *testing.T) {
	m := playModel(t)
	typeString(m, "ls")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	t0 := time.Now()
	m.Update(frameMsg(t0))
	m.Update(frameMsg(t0.Add(2 * time.Minute)))
	state := m.machine.State()
	if state.Phase != session.PhaseEnd {
		t.Fatalf("expected end after the countdown, got %s", state.Phase)
	}
	if state.TypingEnabled {
		t.Fatalf("expected typing disabled after the countdown")
	}
	if m.frozen.TotalCommands != 1 || m.frozen.Score != 2 {
		t.Fatalf("frozen stats must keep the round result: %+v", m.frozen)
	}
	typeString(m, "cd")
	if m.machine.State().Score != state.Score {
		t.Fatalf("typing after the round must not change the score")
	}
}

func TestEndScreenRestartsRound(t *testing.T) {
	m := playModel(t)
	t0 := time.Now()
	m.Update(frameMsg(t0))
	m.Update(frameMsg(t0.Add(2 * time.Minute)))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	state := m.machine.State()
	if state.Phase != session.PhasePlay {
		t.Fatalf("expected a new round from the end screen, got %s", state.Phase)
	}
	if state.Score != 0 || state.TotalCommands != 0 {
		t.Fatalf("expected fresh counters for the new round: %+v", state)
	}
}

func TestEndScreenEscReturnsToTitle(t *testing.T) {
	m := playModel(t)
	t0 := time.Now()
	m.Update(frameMsg(t0))
	m.Update(frameMsg(t0.Add(2 * time.Minute)))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.machine.State().Phase != session.PhaseTitle {
		t.Fatalf("expected title after esc, got %s", m.machine.State().Phase)
	}
}

func TestRenderStatusFormat(t *testing.T) {
	m := playModel(t)
	typeString(m, "ls")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	out := m.renderStatus()
	for _, want := range []string{"Time", "Score 2", "Commands 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status missing %q: %s", want, out)
		}
	}
}

func TestMatchedHintStruckThrough(t *testing.T) {
	m := playModel(t)
	typeString(m, "ls")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := m.matchedHints["ls"]; !ok {
		t.Fatalf("expected ls recorded as matched")
	}
}

func TestTrailingLineHelper(t *testing.T) {
	cases := []struct {
		buf  string
		want string
	}{
		{"", ""},
		{"ls", "ls"},
		{"ls\ncd", "cd"},
		{"ls\n", ""},
	}
	for _, tc := range cases {
		if got := trailingLine([]rune(tc.buf)); got != tc.want {
			t.Fatalf("trailingLine(%q) = %q, want %q", tc.buf, got, tc.want)
		}
	}
}
