package rewrite

import (
	"strings"

	"marketwire/internal/model"
	"marketwire/pkg/classify"
)

const maxKeypoints = 3

// Apply validates an enriched response field by field against the item it
// belongs to. Invalid fields keep their prior value; a too-thin narrative
// is replaced by a fallback synthesized from the keypoints. The item comes
// back flagged as enriched either way.
func Apply(item model.NewsItem, e Enriched) model.NewsItem {
	out := item

	if h := strings.TrimSpace(e.Headline); h != "" {
		out.Headline = h
	}

	if model.ValidImpact(e.Impact) {
		out.Impact = model.Impact(e.Impact)
	}

	if model.ValidSector(e.Sector) {
		sectors := classify.ApplyHint(out.Sectors, model.Sector(e.Sector))
		if len(sectors) > 0 {
			out.Sectors = sectors
			out.Sector = sectors[0]
		}
	}

	if points := cleanKeypoints(e.Keypoints); len(points) > 0 {
		out.Keypoints = points
	}

	if story := strings.TrimSpace(e.Story); len(story) >= MinStoryLength {
		out.Story = story
	} else if fallback := strings.Join(out.Keypoints, " "); len(fallback) > len(out.Story) {
		out.Story = fallback
	}

	out.LLM = true
	return out
}

func cleanKeypoints(points []string) []string {
	out := make([]string, 0, maxKeypoints)
	for _, p := range points {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if len(out) == maxKeypoints {
			break
		}
	}
	return out
}
