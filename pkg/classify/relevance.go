package classify

import "marketwire/internal/model"

// Two distinct off-topic hits are required to reject; a single incidental
// word must not veto an otherwise relevant story.
const negativeRejectThreshold = 2

// IsMarketRelevant reports whether a story carries any capital-markets
// signal. Any sector keyword match passes. With zero sector signal and at
// least two distinct off-topic matches the story is rejected. When neither
// signal fires the story passes: downstream classification and quota
// enforcement narrow further.
func (c *Classifier) IsMarketRelevant(headline, body string) bool {
	text := normalizeText(headline + " " + body)

	for _, sector := range model.KeywordSectors() {
		if c.scoreSector(sector, text) > 0 {
			return true
		}
	}

	negatives := 0
	for _, m := range c.negative {
		if m.matches(text) {
			negatives++
			if negatives >= negativeRejectThreshold {
				return false
			}
		}
	}

	return true
}
