// Package main provides the CLI entrypoint for cmdrush.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cmdrush/cmdrush/internal/config"
	"github.com/cmdrush/cmdrush/internal/dictionary"
	"github.com/cmdrush/cmdrush/internal/logging"
	"github.com/cmdrush/cmdrush/internal/model"
	"github.com/cmdrush/cmdrush/internal/score"
	"github.com/cmdrush/cmdrush/internal/tui"
)

const (
	defaultDuration     = 60
	defaultGoldenMaxLen = 7
	defaultGoldenCount  = 10
)

var (
	playLangs        string
	playDuration     int
	playGoldenMaxLen int
	playGoldenCount  int
	playDictionary   string
	playLogFile      string

	dictDictionary string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cmdrush",
		Short:         "TUI typing game for programming commands",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playLangs, "langs", "", "comma-separated language tags (default: all)")
	rootCmd.Flags().IntVar(&playDuration, "duration", defaultDuration, "round duration in seconds")
	rootCmd.Flags().IntVar(&playGoldenMaxLen, "golden-max-len", defaultGoldenMaxLen, "maximum golden command length")
	rootCmd.Flags().IntVar(&playGoldenCount, "golden-count", defaultGoldenCount, "golden commands sampled per language")
	rootCmd.Flags().StringVar(&playDictionary, "dictionary", "", "path to a custom dictionary YAML")
	rootCmd.Flags().StringVar(&playLogFile, "log-file", "", "debug log file path")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newDictCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "langs", &playLangs, fileCfg.Game.Langs)
	applyIntConfig(cmd, "duration", &playDuration, fileCfg.Game.Duration)
	applyIntConfig(cmd, "golden-max-len", &playGoldenMaxLen, fileCfg.Game.GoldenMaxLen)
	applyIntConfig(cmd, "golden-count", &playGoldenCount, fileCfg.Game.GoldenCount)
	applyStringConfig(cmd, "dictionary", &playDictionary, fileCfg.Game.Dictionary)
	applyStringConfig(cmd, "log-file", &playLogFile, fileCfg.Game.LogFile)

	cfg := model.Config{
		Langs:          splitLangs(playLangs),
		Duration:       time.Duration(playDuration) * time.Second,
		GoldenMaxLen:   playGoldenMaxLen,
		GoldenCount:    playGoldenCount,
		DictionaryPath: playDictionary,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	logPath := playLogFile
	if logPath == "" {
		logPath = config.DefaultLogPath()
	}
	logger := logging.OpenOrNop(logPath)
	defer func() {
		if serr := logger.Sync(); serr != nil {
			// Best-effort flush on exit.
			_ = serr
		}
	}()

	gameModel := tui.NewModel(cfg, logger)
	program := tea.NewProgram(gameModel, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if m, ok := final.(*tui.Model); ok {
		if stats, played := m.LastRound(); played {
			if err := score.RenderSummary(cmd.OutOrStdout(), stats); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "langs",
		Short: "List dictionary languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
	cmd.Flags().StringVar(&dictDictionary, "dictionary", "", "path to a custom dictionary YAML")
	return cmd
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	dict, err := loadDict(dictDictionary)
	if err != nil {
		return err
	}
	for _, lang := range dict.Languages() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", lang, len(dict.Commands(lang))); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Show the command dictionary",
		Args:  cobra.NoArgs,
		RunE:  runDictCmd,
	}
	cmd.Flags().StringVar(&dictDictionary, "dictionary", "", "path to a custom dictionary YAML")
	return cmd
}

func runDictCmd(cmd *cobra.Command, _ []string) error {
	dict, err := loadDict(dictDictionary)
	if err != nil {
		return err
	}

	width := 80
	if w, _, werr := term.GetSize(int(os.Stdout.Fd())); werr == nil && w > 0 {
		width = w
	}

	headers := []string{"Language", "Commands", "Sample"}
	rows := make([][]string, 0, len(dict.Languages()))
	for _, lang := range dict.Languages() {
		commands := dict.Commands(lang)
		sample := strings.Join(commands, " ")
		sampleWidth := width - len("Language") - len("Commands") - 4
		if sampleWidth > 0 {
			sample = runewidth.Truncate(sample, sampleWidth, "…")
		}
		rows = append(rows, []string{lang, fmt.Sprintf("%d", len(commands)), sample})
	}
	rightAlign := map[int]bool{1: true}
	for _, line := range score.FormatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func loadDict(path string) (*dictionary.Dictionary, error) {
	if path != "" {
		dict, err := dictionary.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary: %w", err)
		}
		return dict, nil
	}
	dict, err := dictionary.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}
	return dict, nil
}

func splitLangs(langs string) []string {
	parts := strings.Split(langs, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func validateConfig(cfg model.Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if cfg.GoldenMaxLen <= 0 {
		return fmt.Errorf("--golden-max-len must be > 0")
	}
	if cfg.GoldenCount < 0 {
		return fmt.Errorf("--golden-count must be >= 0")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# cmdrush configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# langs = ""               # Comma-separated language tags (empty: all)
# duration = %d            # Round duration in seconds
# golden-max-length = %d   # Maximum golden command length
# golden-count = %d        # Golden commands sampled per language
# dictionary = ""          # Path to a custom dictionary YAML
# log-file = ""            # Debug log file path
`,
		defaultDuration,
		defaultGoldenMaxLen,
		defaultGoldenCount,
	)
}
