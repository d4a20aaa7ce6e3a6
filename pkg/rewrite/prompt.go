package rewrite

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a financial news editor. You receive a numbered batch of market news stories, each with a story_key, a headline and contextual text. Rewrite each story in a neutral, factual tone.

Rules:
1. Keep all facts: numbers, names, dates, percentages
2. Remove urgency words (BREAKING, NOW, ALERT, JUST IN) and ALL CAPS
3. "story" is a 2-4 sentence narrative of what happened and why it matters to markets
4. "keypoints" is exactly 3 short bullet strings
5. "sector" must be one of: GENERAL, TECHNOLOGY, FINANCE, MINING, HEALTHCARE, REGULATION, CONSUMER
6. "impact" must be one of: HIGH, MEDIUM, LOW. HIGH only for whole-market shocks (central bank rate decisions, confirmed recessions, market-wide halts, major geopolitical shocks)
7. Echo each input story_key back unchanged

Output a JSON array only, no other text. One object per input story:
[
  {
    "story_key": "echoed input key",
    "headline": "rewritten headline",
    "sector": "one sector label",
    "impact": "HIGH|MEDIUM|LOW",
    "keypoints": ["point 1", "point 2", "point 3"],
    "story": "rewritten narrative"
  }
]`

func formatBatch(batch []Item) string {
	var sb strings.Builder
	for i, item := range batch {
		sb.WriteString(fmt.Sprintf("[%d] story_key: %s\n", i+1, item.StoryKey))
		sb.WriteString(fmt.Sprintf("    Region: %s, Sector: %s, Impact: %s\n", item.Region, item.Sector, item.Impact))
		sb.WriteString(fmt.Sprintf("    Headline: %s\n", item.Headline))
		if item.Context != "" {
			sb.WriteString(fmt.Sprintf("    Context: %s\n", item.Context))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
