package classify

import (
	"sort"
	"strings"
	"unicode"

	"marketwire/internal/model"
)

const (
	maxSectorLabels = 3

	// Margin at which a clearly dominant TECHNOLOGY or FINANCE score
	// pushes the other to the back of the label set. Generic
	// finance-adjacent vocabulary ("market", "stocks") should not crowd
	// out a clearly tech-dominant story, and vice versa.
	sectorDominanceMargin = 4
)

// Classifier scores text against the lexicon. It is pure: repeated calls
// with the same input return identical results.
type Classifier struct {
	sectors  map[model.Sector][]matcher
	high     []matcher
	medium   []matcher
	negative []matcher
}

func NewClassifier(lex *Lexicon) *Classifier {
	c := &Classifier{
		sectors:  make(map[model.Sector][]matcher, len(lex.Sectors)),
		high:     compileAll(lex.Impact.High),
		medium:   compileAll(lex.Impact.Medium),
		negative: compileAll(lex.Negative),
	}
	for name, keywords := range lex.Sectors {
		c.sectors[model.Sector(name)] = compileAll(keywords)
	}
	return c
}

// normalizeText lowercases and strips punctuation, keeping currency,
// percent, slash and hyphen tokens which carry market meaning.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '$' || r == '%' || r == '/' || r == '-' ||
			r == '€' || r == '£' || r == '¥':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func (c *Classifier) scoreSector(sector model.Sector, text string) int {
	score := 0
	for _, m := range c.sectors[sector] {
		if m.matches(text) {
			score += m.weight
		}
	}
	return score
}

// InferSectors returns the ordered sector labels for a headline and
// description, primary first. It never returns an empty set: when no
// keyword fires the result is [GENERAL].
func (c *Classifier) InferSectors(headline, description string) []model.Sector {
	text := normalizeText(headline + " " + description)

	type scored struct {
		sector model.Sector
		score  int
	}
	var hits []scored
	for _, sector := range model.KeywordSectors() {
		if s := c.scoreSector(sector, text); s > 0 {
			hits = append(hits, scored{sector, s})
		}
	}

	if len(hits) == 0 {
		return []model.Sector{model.SectorGeneral}
	}

	// Stable order: score descending, enumeration order on ties.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > maxSectorLabels {
		hits = hits[:maxSectorLabels]
	}

	techIdx, finIdx := -1, -1
	for i, h := range hits {
		switch h.sector {
		case model.SectorTechnology:
			techIdx = i
		case model.SectorFinance:
			finIdx = i
		}
	}
	if techIdx >= 0 && finIdx >= 0 {
		diff := hits[techIdx].score - hits[finIdx].score
		switch {
		case diff >= sectorDominanceMargin:
			hits = moveToBack(hits, finIdx)
		case -diff >= sectorDominanceMargin:
			hits = moveToBack(hits, techIdx)
		}
	}

	out := make([]model.Sector, len(hits))
	for i, h := range hits {
		out[i] = h.sector
	}
	return out
}

func moveToBack[T any](s []T, i int) []T {
	v := s[i]
	s = append(s[:i], s[i+1:]...)
	return append(s, v)
}

// ApplyHint unions a discovery hint into the front of an inferred label
// set. A GENERAL or empty hint changes nothing.
func ApplyHint(sectors []model.Sector, hint model.Sector) []model.Sector {
	if hint == "" || hint == model.SectorGeneral {
		return sectors
	}
	out := []model.Sector{hint}
	for _, s := range sectors {
		if s != hint && s != model.SectorGeneral {
			out = append(out, s)
		}
	}
	return out
}
