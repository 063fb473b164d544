package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/cmdrush/cmdrush/internal/score"
	"github.com/cmdrush/cmdrush/internal/session"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	matchedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
	missStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	typingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	hintLangStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	hintDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A")).Strikethrough(true)
	cursorStyle   = typingStyle.Copy().Underline(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.errMsg != "" {
		return missStyle.Render(m.errMsg) + "\n"
	}
	var content string
	switch m.machine.State().Phase {
	case session.PhaseLoading:
		content = hintStyle.Render("Loading dictionary...")
	case session.PhaseTitle:
		content = m.titleView()
	case session.PhasePlay:
		content = m.playView()
	case session.PhaseEnd:
		content = m.endView()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) titleView() string {
	lines := []string{
		titleStyle.Render("cmdrush"),
		"",
		hintStyle.Render(fmt.Sprintf("Type commands before the %s countdown runs out.", m.cfg.Duration)),
		"",
		m.renderHints(),
		"",
		statusStyle.Render("enter: start · q: quit"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) playView() string {
	lines := []string{
		statusStyle.Render(m.renderStatus()),
		"",
		m.renderBuffer(),
		"",
		m.renderHints(),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) endView() string {
	cmdPerMin, charsPerMin := score.RoundMetrics(m.frozen.TotalCommands, m.frozen.TotalChars, m.frozen.DurationMs)
	lines := []string{
		titleStyle.Render("Time's up!"),
		"",
		scoreStyle.Render(fmt.Sprintf("Score %d", m.frozen.Score)),
		statusStyle.Render(fmt.Sprintf("%d commands · %d chars · %.1f cmd/min · %.1f chars/min",
			m.frozen.TotalCommands, m.frozen.TotalChars, cmdPerMin, charsPerMin)),
		"",
		m.renderBreakdown(),
		"",
		statusStyle.Render("enter: play again · esc: title · q: quit"),
	}
	return strings.Join(lines, "\n")
}

// renderStatus builds the one-line header shown during play.
func (m *Model) renderStatus() string {
	state := m.machine.State()
	segments := []string{
		fmt.Sprintf("Time %.1fs", state.Remaining.Seconds()),
		fmt.Sprintf("Score %d", state.Score),
		fmt.Sprintf("Commands %d", state.TotalCommands),
	}
	return strings.Join(segments, "  ")
}

func (m *Model) renderBuffer() string {
	width := m.contentWidth()
	var out []string
	historyRows := maxInt(1, m.historyRows())
	start := 0
	if len(m.history) > historyRows {
		start = len(m.history) - historyRows
	}
	for _, entry := range m.history[start:] {
		style := missStyle
		if entry.matched {
			style = matchedStyle
		}
		text := entry.text
		if text == "" {
			text = "·"
		}
		for _, line := range wrapLine(text, width) {
			out = append(out, style.Render(line))
		}
	}
	out = append(out, m.renderCurrentLine())
	return strings.Join(out, "\n")
}

// renderCurrentLine styles the trailing line with an underline cursor, the
// way the cursor rune is marked rather than inserted.
func (m *Model) renderCurrentLine() string {
	line := []rune(trailingLine(m.buffer))
	lineStart := len(m.buffer) - len(line)
	cursorIdx := m.cursor - lineStart
	var b strings.Builder
	for i, r := range line {
		if i == cursorIdx {
			b.WriteString(cursorStyle.Render(string(r)))
			continue
		}
		b.WriteString(typingStyle.Render(string(r)))
	}
	if cursorIdx >= len(line) {
		b.WriteString(cursorStyle.Render(" "))
	}
	return b.String()
}

func (m *Model) renderHints() string {
	if len(m.hints) == 0 {
		return ""
	}
	var out []string
	for _, lang := range m.dict.Languages() {
		sample := m.hints[lang]
		if len(sample) == 0 {
			continue
		}
		parts := make([]string, 0, len(sample))
		for _, cmd := range sample {
			if _, done := m.matchedHints[cmd]; done {
				parts = append(parts, hintDoneStyle.Render(cmd))
				continue
			}
			parts = append(parts, hintStyle.Render(cmd))
		}
		out = append(out, hintLangStyle.Render(lang)+" "+strings.Join(parts, " "))
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderBreakdown() string {
	rows := make([]table.Row, 0, len(m.frozen.PerLanguage))
	for _, row := range score.LanguageRows(m.frozen.PerLanguage) {
		rows = append(rows, table.Row{row[0], row[1]})
	}
	if len(rows) == 0 {
		return hintStyle.Render("No commands matched.")
	}
	columns := []table.Column{
		{Title: "Language", Width: 10},
		{Title: "Commands", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)),
	)
	t.SetStyles(breakdownStyles())
	return t.View()
}

func breakdownStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true)
	styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	styles.Cell = styles.Cell.Foreground(lipgloss.Color("#B8B8B8"))
	return styles
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	width := int(float64(m.width) * 0.70)
	if width < 1 {
		width = 1
	}
	return width
}

func (m *Model) historyRows() int {
	if m.height == 0 {
		return 8
	}
	return m.height / 3
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
