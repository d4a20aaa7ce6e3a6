// Package classify assigns sector and impact labels to news text from
// curated keyword dictionaries. The dictionaries are data, not code: they
// ship embedded as YAML and can be overridden with a config file, so the
// lists can be retuned without touching the classifier.
package classify

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"marketwire/internal/model"
)

//go:embed lexicon.yaml
var defaultLexicon []byte

type Lexicon struct {
	Sectors  map[string][]string `yaml:"sectors"`
	Impact   ImpactLists         `yaml:"impact"`
	Negative []string            `yaml:"negative"`
}

type ImpactLists struct {
	High   []string `yaml:"high"`
	Medium []string `yaml:"medium"`
}

// LoadLexicon reads keyword lists from path, or the embedded defaults
// when path is empty.
func LoadLexicon(path string) (*Lexicon, error) {
	raw := defaultLexicon
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read lexicon: %w", err)
		}
		raw = b
	}

	var lex Lexicon
	if err := yaml.Unmarshal(raw, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	for name := range lex.Sectors {
		if !model.ValidSector(name) || name == string(model.SectorGeneral) {
			return nil, fmt.Errorf("lexicon: invalid sector %q", name)
		}
	}

	return &lex, nil
}

// matcher matches one keyword: word-boundary for single tokens, plain
// substring for multi-word phrases. Multi-word phrases score double.
type matcher struct {
	phrase string
	re     *regexp.Regexp
	weight int
}

func compileKeyword(kw string) matcher {
	kw = strings.ToLower(strings.TrimSpace(kw))
	if strings.ContainsRune(kw, ' ') {
		return matcher{phrase: kw, weight: 2}
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
	return matcher{re: re, weight: 1}
}

func (m matcher) matches(text string) bool {
	if m.re != nil {
		return m.re.MatchString(text)
	}
	return strings.Contains(text, m.phrase)
}

func compileAll(keywords []string) []matcher {
	out := make([]matcher, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		out = append(out, compileKeyword(kw))
	}
	return out
}
