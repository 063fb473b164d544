// Package golden samples target commands shown as typing hints.
package golden

import (
	"math/rand"
	"strings"
	"time"

	"github.com/cmdrush/cmdrush/internal/dictionary"
)

// Sampler draws random golden commands. Reseed per round with New.
type Sampler struct {
	rnd *rand.Rand
}

// New returns a Sampler seeded with the current time.
func New() *Sampler {
	return &Sampler{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Pick selects up to size commands per language with rune length at most
// maxLen, skipping underscore-prefixed and call-style entries. Languages
// with no eligible commands map to an empty sample.
func (s *Sampler) Pick(dict *dictionary.Dictionary, maxLen, size int) map[string][]string {
	out := make(map[string][]string)
	for _, lang := range dict.Languages() {
		out[lang] = s.pickLang(dict.Commands(lang), maxLen, size)
	}
	return out
}

func (s *Sampler) pickLang(commands []string, maxLen, size int) []string {
	candidates := make([]string, 0, len(commands))
	for _, cmd := range commands {
		if !Eligible(cmd, maxLen) {
			continue
		}
		candidates = append(candidates, cmd)
	}
	if size <= 0 || len(candidates) == 0 {
		return nil
	}
	if len(candidates) <= size {
		return candidates
	}
	sample := make([]string, 0, size)
	for _, idx := range s.rnd.Perm(len(candidates))[:size] {
		sample = append(sample, candidates[idx])
	}
	return sample
}

// Eligible reports whether a command qualifies as a golden hint.
func Eligible(cmd string, maxLen int) bool {
	if cmd == "" || len([]rune(cmd)) > maxLen {
		return false
	}
	if strings.HasPrefix(cmd, "_") {
		return false
	}
	if strings.HasSuffix(cmd, ")") {
		return false
	}
	return true
}
