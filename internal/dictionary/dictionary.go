// Package dictionary holds the command dictionary and exact-match lookup.
package dictionary

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cmdrush/cmdrush/internal/model"
)

//go:embed commands.yaml
var embeddedCommands []byte

// Dictionary maps language tags to ordered command lists. Immutable after load.
type Dictionary struct {
	commands map[string][]string
	index    map[string][]string
}

// Load returns the dictionary shipped with the binary.
func Load() (*Dictionary, error) {
	return parse(embeddedCommands)
}

// LoadFile reads a dictionary from a YAML file.
func LoadFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

// LoadConfig loads either the configured dictionary file or the embedded one,
// restricted to the configured languages when any are set.
func LoadConfig(cfg model.Config) (*Dictionary, error) {
	var dict *Dictionary
	var err error
	if cfg.DictionaryPath != "" {
		dict, err = LoadFile(cfg.DictionaryPath)
	} else {
		dict, err = Load()
	}
	if err != nil {
		return nil, err
	}
	if len(cfg.Langs) == 0 {
		return dict, nil
	}
	return dict.Restrict(cfg.Langs)
}

func parse(data []byte) (*Dictionary, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}
	commands := make(map[string][]string, len(raw))
	for lang, list := range raw {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			return nil, fmt.Errorf("dictionary contains an empty language tag")
		}
		cleaned := make([]string, 0, len(list))
		for _, cmd := range list {
			cmd = strings.TrimSpace(cmd)
			if cmd == "" {
				continue
			}
			cleaned = append(cleaned, cmd)
		}
		if len(cleaned) == 0 {
			return nil, fmt.Errorf("dictionary language %q is empty", lang)
		}
		commands[lang] = cleaned
	}
	if len(commands) == 0 {
		return nil, fmt.Errorf("dictionary is empty")
	}
	return newDictionary(commands), nil
}

func newDictionary(commands map[string][]string) *Dictionary {
	index := map[string][]string{}
	for lang, list := range commands {
		for _, cmd := range list {
			index[cmd] = append(index[cmd], lang)
		}
	}
	for cmd := range index {
		sort.Strings(index[cmd])
	}
	return &Dictionary{commands: commands, index: index}
}

// Restrict returns a dictionary containing only the given languages.
func (d *Dictionary) Restrict(langs []string) (*Dictionary, error) {
	commands := make(map[string][]string, len(langs))
	for _, lang := range langs {
		list, ok := d.commands[lang]
		if !ok {
			return nil, fmt.Errorf("unknown language %q (available: %s)", lang, strings.Join(d.Languages(), ", "))
		}
		commands[lang] = list
	}
	return newDictionary(commands), nil
}

// Find matches the trimmed line against every command in every language.
// It is pure: scoring is the caller's concern.
func (d *Dictionary) Find(line string) model.MatchResult {
	line = strings.TrimSpace(line)
	result := model.MatchResult{Input: line}
	if line == "" {
		return result
	}
	langs, ok := d.index[line]
	if !ok {
		return result
	}
	result.Matched = true
	result.Command = line
	result.Languages = append([]string(nil), langs...)
	return result
}

// Languages returns the sorted language tags.
func (d *Dictionary) Languages() []string {
	langs := make([]string, 0, len(d.commands))
	for lang := range d.commands {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Commands returns the command list for a language, or nil if unknown.
func (d *Dictionary) Commands(lang string) []string {
	list, ok := d.commands[lang]
	if !ok {
		return nil
	}
	return append([]string(nil), list...)
}

// Len returns the total number of command entries across all languages.
func (d *Dictionary) Len() int {
	total := 0
	for _, list := range d.commands {
		total += len(list)
	}
	return total
}
