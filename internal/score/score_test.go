package score

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cmdrush/cmdrush/internal/model"
)

func TestRoundMetrics(t *testing.T) {
	cmdPerMin, charsPerMin := RoundMetrics(30, 120, 60000)
	if cmdPerMin != 30 {
		t.Fatalf("expected 30 commands/min, got %.2f", cmdPerMin)
	}
	if charsPerMin != 120 {
		t.Fatalf("expected 120 chars/min, got %.2f", charsPerMin)
	}
}

func TestRoundMetricsZeroDuration(t *testing.T) {
	cmdPerMin, charsPerMin := RoundMetrics(10, 40, 0)
	if cmdPerMin != 0 || charsPerMin != 0 {
		t.Fatalf("expected zero metrics for zero duration")
	}
}

func TestLanguageRowsOrder(t *testing.T) {
	rows := LanguageRows(map[string]int{"py": 2, "bash": 5, "js": 2})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "bash" {
		t.Fatalf("expected bash first, got %s", rows[0][0])
	}
	if rows[1][0] != "js" || rows[2][0] != "py" {
		t.Fatalf("expected ties broken by language tag: %v", rows)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	stats := model.RoundStats{
		Score:         42,
		TotalCommands: 6,
		TotalChars:    21,
		PerLanguage:   map[string]int{"bash": 4, "js": 2},
		DurationMs:    60000,
	}
	if err := RenderSummary(&buf, stats); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Score: 42", "Commands: 6", "Commands/min: 6.0", "bash", "js"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, model.RoundStats{}); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No commands typed.") {
		t.Fatalf("expected empty-round message, got %q", buf.String())
	}
}
