package classify

import "marketwire/internal/model"

// InferImpact classifies text as HIGH, MEDIUM or LOW with strict
// precedence. HIGH is reserved for whole-market shocks; over-classifying
// HIGH would defeat the downstream quota stratification that surfaces a
// small number of genuinely major stories.
func (c *Classifier) InferImpact(text string) model.Impact {
	normalized := normalizeText(text)
	for _, m := range c.high {
		if m.matches(normalized) {
			return model.ImpactHigh
		}
	}
	for _, m := range c.medium {
		if m.matches(normalized) {
			return model.ImpactMedium
		}
	}
	return model.ImpactLow
}
