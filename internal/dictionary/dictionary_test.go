package dictionary

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cmdrush/cmdrush/internal/model"
)

func TestLoadEmbedded(t *testing.T) {
	dict, err := Load()
	if err != nil {
		t.Fatalf("failed to load embedded dictionary: %v", err)
	}
	langs := dict.Languages()
	want := []string{"bash", "html", "js", "py"}
	if !reflect.DeepEqual(langs, want) {
		t.Fatalf("unexpected languages: %v", langs)
	}
	if dict.Len() == 0 {
		t.Fatalf("expected a non-empty dictionary")
	}
}

func TestFindEmptyLine(t *testing.T) {
	dict, err := Load()
	if err != nil {
		t.Fatalf("failed to load dictionary: %v", err)
	}
	for _, line := range []string{"", "   ", "\t"} {
		res := dict.Find(line)
		if res.Matched {
			t.Fatalf("expected no match for %q", line)
		}
		if len(res.Languages) != 0 {
			t.Fatalf("expected empty language set for %q, got %v", line, res.Languages)
		}
	}
}

func TestFindSingleLanguage(t *testing.T) {
	dict, err := Load()
	if err != nil {
		t.Fatalf("failed to load dictionary: %v", err)
	}
	res := dict.Find("ls")
	if !res.Matched || res.Command != "ls" {
		t.Fatalf("expected ls to match: %+v", res)
	}
	if !reflect.DeepEqual(res.Languages, []string{"bash"}) {
		t.Fatalf("expected bash only, got %v", res.Languages)
	}
}

func TestFindMultipleLanguages(t *testing.T) {
	dict, err := Load()
	if err != nil {
		t.Fatalf("failed to load dictionary: %v", err)
	}
	res := dict.Find("class")
	if !res.Matched {
		t.Fatalf("expected class to match")
	}
	if !reflect.DeepEqual(res.Languages, []string{"js", "py"}) {
		t.Fatalf("expected js and py, got %v", res.Languages)
	}
}

func TestFindTrimsWhitespace(t *testing.T) {
	dict, err := Load()
	if err != nil {
		t.Fatalf("failed to load dictionary: %v", err)
	}
	res := dict.Find("  grep  ")
	if !res.Matched || res.Input != "grep" {
		t.Fatalf("expected trimmed match: %+v", res)
	}
}

func TestFindIsWholeLine(t *testing.T) {
	dict, err := Load()
	if err != nil {
		t.Fatalf("failed to load dictionary: %v", err)
	}
	// "log" is an entry but "console.log" is not; matching is the full
	// trimmed line, never a substring or trailing token.
	if !dict.Find("log").Matched {
		t.Fatalf("expected log to match")
	}
	if dict.Find("console.log").Matched {
		t.Fatalf("console.log must not match via its trailing token")
	}
}

func TestFindIsCaseSensitive(t *testing.T) {
	dict, err := Load()
	if err != nil {
		t.Fatalf("failed to load dictionary: %v", err)
	}
	if dict.Find("LS").Matched {
		t.Fatalf("matching must be case-sensitive")
	}
}

func TestRestrict(t *testing.T) {
	dict, err := Load()
	if err != nil {
		t.Fatalf("failed to load dictionary: %v", err)
	}
	sub, err := dict.Restrict([]string{"bash"})
	if err != nil {
		t.Fatalf("Restrict failed: %v", err)
	}
	if !reflect.DeepEqual(sub.Languages(), []string{"bash"}) {
		t.Fatalf("unexpected languages: %v", sub.Languages())
	}
	if sub.Find("class").Matched {
		t.Fatalf("restricted dictionary must not match other languages")
	}
	if _, err := dict.Restrict([]string{"rust"}); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	content := "go:\n  - func\n  - defer\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dictionary: %v", err)
	}
	dict, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !dict.Find("defer").Matched {
		t.Fatalf("expected defer to match")
	}
}

func TestLoadFileRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	if err := os.WriteFile(path, []byte("go: []\n"), 0o644); err != nil {
		t.Fatalf("failed to write dictionary: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for empty language")
	}
}

func TestLoadConfigRestrictsLanguages(t *testing.T) {
	dict, err := LoadConfig(model.Config{Langs: []string{"bash", "js"}})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !reflect.DeepEqual(dict.Languages(), []string{"bash", "js"}) {
		t.Fatalf("unexpected languages: %v", dict.Languages())
	}
}
