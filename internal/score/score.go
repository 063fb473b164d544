// Package score contains round metric calculations and reporting.
package score

import (
	"fmt"
	"io"
	"sort"

	"github.com/cmdrush/cmdrush/internal/model"
)

// RoundMetrics computes commands-per-minute and characters-per-minute.
func RoundMetrics(commands, chars int, durationMs int64) (cmdPerMin, charsPerMin float64) {
	if durationMs <= 0 {
		return 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	if minutes <= 0 {
		return 0, 0
	}
	cmdPerMin = float64(commands) / minutes
	charsPerMin = float64(chars) / minutes
	return cmdPerMin, charsPerMin
}

// LanguageRows returns per-language counts sorted by count descending, then
// by language tag.
func LanguageRows(perLanguage map[string]int) [][2]string {
	type item struct {
		lang  string
		count int
	}
	items := make([]item, 0, len(perLanguage))
	for lang, count := range perLanguage {
		items = append(items, item{lang: lang, count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count == items[j].count {
			return items[i].lang < items[j].lang
		}
		return items[i].count > items[j].count
	})
	rows := make([][2]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, [2]string{it.lang, fmt.Sprintf("%d", it.count)})
	}
	return rows
}

// RenderSummary prints a plain-text round summary.
func RenderSummary(w io.Writer, stats model.RoundStats) error {
	if stats.TotalCommands == 0 {
		_, err := fmt.Fprintln(w, "No commands typed.")
		return err
	}
	cmdPerMin, charsPerMin := RoundMetrics(stats.TotalCommands, stats.TotalChars, stats.DurationMs)
	if _, err := fmt.Fprintln(w, "Round Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Score: %d\n", stats.Score); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Commands: %d\n", stats.TotalCommands); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Characters: %d\n", stats.TotalChars); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Commands/min: %.1f\n", cmdPerMin); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Chars/min: %.1f\n", charsPerMin); err != nil {
		return err
	}

	headers := []string{"Language", "Commands"}
	rows := make([][]string, 0, len(stats.PerLanguage))
	for _, row := range LanguageRows(stats.PerLanguage) {
		rows = append(rows, []string{row[0], row[1]})
	}
	rightAlign := map[int]bool{1: true}
	for _, line := range FormatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
