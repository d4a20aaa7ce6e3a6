// Package trust decides whether a discovered story comes from a publisher
// worth displaying. It is biased toward precision: dropping a legitimate
// story is cheaper than surfacing an unreliable source.
package trust

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"marketwire/internal/model"
	"marketwire/pkg/textutil"
)

//go:embed sources.yaml
var defaultSources []byte

type Sourcelist struct {
	AllowDomains []string `yaml:"allow_domains"`
	BlockDomains []string `yaml:"block_domains"`
	NameHints    []string `yaml:"name_hints"`
	// Aggregator redirect hosts: links through these do not identify the
	// real publisher, so they never count as an allowlisted domain.
	RedirectDomains []string `yaml:"redirect_domains"`
	GenericNames    []string `yaml:"generic_names"`
}

// LoadSourcelist reads the curated lists from path, or the embedded
// defaults when path is empty.
func LoadSourcelist(path string) (*Sourcelist, error) {
	raw := defaultSources
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sourcelist: %w", err)
		}
		raw = b
	}
	var sl Sourcelist
	if err := yaml.Unmarshal(raw, &sl); err != nil {
		return nil, fmt.Errorf("parse sourcelist: %w", err)
	}
	return &sl, nil
}

type Filter struct {
	allow    map[string]bool
	block    map[string]bool
	redirect map[string]bool
	generic  map[string]bool
	hints    []string
}

func NewFilter(sl *Sourcelist) *Filter {
	return &Filter{
		allow:    domainSet(sl.AllowDomains),
		block:    domainSet(sl.BlockDomains),
		redirect: domainSet(sl.RedirectDomains),
		generic:  nameSet(sl.GenericNames),
		hints:    lowerAll(sl.NameHints),
	}
}

// IsTrusted applies the acceptance rules in order. The blocklist is an
// unconditional veto; after that any single acceptance path suffices:
// allowlisted publisher domain, a curated name hint, a curated-aggregator
// discovery carrying a usable name, or a real publisher URL paired with a
// non-trivial name.
func (f *Filter) IsTrusted(sources []model.Source, viaAggregator bool) bool {
	if len(sources) == 0 {
		return false
	}

	for _, src := range sources {
		if d := textutil.Domain(src.URL); d != "" && f.matchDomain(f.block, d) {
			return false
		}
	}

	for _, src := range sources {
		d := textutil.Domain(src.URL)
		if d == "" || f.matchDomain(f.redirect, d) {
			continue
		}
		if f.matchDomain(f.allow, d) {
			return true
		}
	}

	primary := strings.ToLower(strings.TrimSpace(sources[0].Name))
	for _, hint := range f.hints {
		if hint != "" && strings.Contains(primary, hint) {
			return true
		}
	}

	// Aggregator feeds are pre-curated; any usable name is enough.
	if viaAggregator && f.usableName(primary) {
		return true
	}

	for _, src := range sources {
		d := textutil.Domain(src.URL)
		if d != "" && !f.matchDomain(f.redirect, d) && f.usableName(primary) {
			return true
		}
	}

	return false
}

func (f *Filter) usableName(name string) bool {
	return len(name) >= 3 && !f.generic[name]
}

// matchDomain checks the host and every parent domain, so a listed
// example.com also covers news.example.com.
func (f *Filter) matchDomain(set map[string]bool, domain string) bool {
	for domain != "" {
		if set[domain] {
			return true
		}
		i := strings.IndexByte(domain, '.')
		if i < 0 {
			return false
		}
		domain = domain[i+1:]
	}
	return false
}

func domainSet(domains []string) map[string]bool {
	out := make(map[string]bool, len(domains))
	for _, d := range domains {
		d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), "www.")
		if d != "" {
			out[d] = true
		}
	}
	return out
}

func nameSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			out[n] = true
		}
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
