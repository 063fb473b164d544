// Package tui provides the Bubble Tea game interface.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cmdrush/cmdrush/internal/dictionary"
	"github.com/cmdrush/cmdrush/internal/golden"
	"github.com/cmdrush/cmdrush/internal/keyfilter"
	"github.com/cmdrush/cmdrush/internal/model"
	"github.com/cmdrush/cmdrush/internal/session"
)

const frameInterval = time.Second / 60

type historyLine struct {
	text    string
	matched bool
}

// Model implements the Bubble Tea game UI.
type Model struct {
	cfg     model.Config
	logger  *zap.Logger
	machine *session.Machine
	dict    *dictionary.Dictionary
	sampler *golden.Sampler
	filter  *keyfilter.Filter

	hints        map[string][]string
	matchedHints map[string]struct{}

	buffer  []rune
	cursor  int
	history []historyLine

	lastResult *model.MatchResult
	lastFrame  time.Time
	frozen     model.RoundStats

	width  int
	height int
	errMsg string
}

type frameMsg time.Time

type dictLoadedMsg struct {
	dict *dictionary.Dictionary
	err  error
}

// NewModel constructs the game model in the loading phase.
func NewModel(cfg model.Config, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{
		cfg:          cfg,
		logger:       logger,
		machine:      session.NewMachine(logger),
		sampler:      golden.New(),
		filter:       keyfilter.New(),
		matchedHints: map[string]struct{}{},
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadDictionary, frameCmd())
}

func (m *Model) loadDictionary() tea.Msg {
	dict, err := dictionary.LoadConfig(m.cfg)
	return dictLoadedMsg{dict: dict, err: err}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case dictLoadedMsg:
		return m.handleDictLoaded(msg)
	case frameMsg:
		return m.handleFrame(time.Time(msg))
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleDictLoaded(msg dictLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		m.logger.Error("failed to load dictionary", zap.Error(msg.err))
		return m, tea.Quit
	}
	m.dict = msg.dict
	if err := m.machine.Ready(); err != nil {
		m.logger.Warn("ready failed", zap.Error(err))
		return m, nil
	}
	m.hints = m.sampler.Pick(m.dict, m.cfg.GoldenMaxLen, m.cfg.GoldenCount)
	return m, nil
}

func (m *Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.lastFrame.IsZero() {
		m.lastFrame = now
		return m, frameCmd()
	}
	delta := now.Sub(m.lastFrame)
	m.lastFrame = now
	if m.machine.State().Phase == session.PhasePlay && m.machine.Tick(delta) {
		m.finishRound()
	}
	return m, frameCmd()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.machine.State().Phase {
	case session.PhaseTitle:
		return m.handleTitleKey(msg)
	case session.PhasePlay:
		return m.handlePlayKey(msg)
	case session.PhaseEnd:
		return m.handleEndKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		m.startRound()
	case msg.String() == "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleEndKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		m.startRound()
	case msg.Type == tea.KeyEsc:
		if err := m.machine.Reset(); err != nil {
			m.logger.Warn("reset failed", zap.Error(err))
		}
	case msg.String() == "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isControlChord(msg) {
		// Terminals deliver a chord as one event: latch, decide, release.
		m.filter.KeyDown(keyfilter.KeyControl)
		m.filter.Allow(0, m.leftChar())
		m.filter.KeyUp(keyfilter.KeyControl)
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		if m.filter.Allow(keyfilter.KeyEnter, m.leftChar()) {
			m.handleEnter()
		}
	case tea.KeyBackspace, tea.KeyDelete:
		if m.filter.Allow(keyfilter.KeyBackspace, m.leftChar()) {
			m.deleteBefore()
		}
	case tea.KeyLeft:
		if m.filter.Allow(keyfilter.KeyLeft, m.leftChar()) {
			m.moveLeft()
		}
	case tea.KeyRight:
		if m.filter.Allow(keyfilter.KeyRight, m.leftChar()) {
			m.moveRight()
		}
	case tea.KeySpace, tea.KeyTab:
		// Outside the accepted ranges.
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			code := keyfilter.CodeForRune(r)
			if !m.filter.Allow(code, m.leftChar()) {
				continue
			}
			m.insertRune(r)
		}
	}
	return m, nil
}

// handleEnter evaluates the trailing line and manages the line break
// itself: a literal newline at the cursor could split the typed word.
func (m *Model) handleEnter() {
	line := trailingLine(m.buffer)
	res := m.dict.Find(line)
	m.machine.Apply(res)
	m.lastResult = &res
	m.history = append(m.history, historyLine{text: res.Input, matched: res.Matched})
	if res.Matched {
		m.matchedHints[res.Command] = struct{}{}
		m.logger.Debug("command matched",
			zap.String("command", res.Command),
			zap.Strings("languages", res.Languages))
	}
	m.buffer = append(m.buffer, '\n')
	m.cursor = len(m.buffer)
}

func (m *Model) startRound() {
	if err := m.machine.Start(m.cfg.Duration); err != nil {
		m.logger.Warn("start failed", zap.Error(err))
		return
	}
	m.buffer = nil
	m.cursor = 0
	m.history = nil
	m.lastResult = nil
	m.matchedHints = map[string]struct{}{}
	m.sampler = golden.New()
	m.hints = m.sampler.Pick(m.dict, m.cfg.GoldenMaxLen, m.cfg.GoldenCount)
}

func (m *Model) finishRound() {
	m.frozen = m.machine.State().Stats()
	if err := m.machine.Finish(); err != nil {
		m.logger.Warn("finish failed", zap.Error(err))
		return
	}
	m.logger.Info("round finished",
		zap.String("round", m.frozen.RoundID),
		zap.Int("score", m.frozen.Score),
		zap.Int("commands", m.frozen.TotalCommands))
}

// LastRound returns the stats of the most recently finished round.
func (m *Model) LastRound() (model.RoundStats, bool) {
	if m.frozen.RoundID == "" {
		return model.RoundStats{}, false
	}
	return m.frozen, true
}

func (m *Model) leftChar() rune {
	if m.cursor == 0 {
		return keyfilter.NoChar
	}
	return m.buffer[m.cursor-1]
}

func (m *Model) insertRune(r rune) {
	m.buffer = append(m.buffer, 0)
	copy(m.buffer[m.cursor+1:], m.buffer[m.cursor:])
	m.buffer[m.cursor] = r
	m.cursor++
}

func (m *Model) deleteBefore() {
	if m.cursor == 0 {
		return
	}
	m.buffer = append(m.buffer[:m.cursor-1], m.buffer[m.cursor:]...)
	m.cursor--
}

func (m *Model) moveLeft() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *Model) moveRight() {
	if m.cursor < len(m.buffer) {
		m.cursor++
	}
}

func isControlChord(msg tea.KeyMsg) bool {
	s := msg.String()
	return len(s) > 5 && s[:5] == "ctrl+"
}

// trailingLine returns the text after the last newline, trimmed by Find.
func trailingLine(buf []rune) string {
	start := 0
	for i := len(buf) - 1; i >= 0; i-- {
		if buf[i] == '\n' {
			start = i + 1
			break
		}
	}
	return string(buf[start:])
}
