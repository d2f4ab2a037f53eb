package blog

import (
	"sort"
	"strings"
)

// interestBoost is the score increment applied once per matching interest.
const interestBoost = 0.1

// ScoreContent rewrites each item's relevance score from the user's
// interests: one fixed increment per comma-separated interest found in the
// item's entity keywords or summary, case-insensitively, clamped to [0,1].
// The result is a new slice sorted by score descending; ties keep their
// original relative order.
func ScoreContent(items []AnalyzedContent, userCtx UserContext) []AnalyzedContent {
	scored := make([]AnalyzedContent, len(items))
	copy(scored, items)

	interests := splitInterests(userCtx.Interests)
	for i := range scored {
		score := scored[i].RelevanceScore
		if len(interests) > 0 {
			keywords := make([]string, 0)
			for _, e := range scored[i].Entities {
				for _, k := range e.Keywords {
					keywords = append(keywords, strings.ToLower(k))
				}
			}
			summary := strings.ToLower(scored[i].Summary)
			for _, interest := range interests {
				if containsString(keywords, interest) || strings.Contains(summary, interest) {
					score += interestBoost
				}
			}
		}
		scored[i].RelevanceScore = clamp01(score)
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].RelevanceScore > scored[b].RelevanceScore
	})
	return scored
}

// ExtractAndRankPlaces flattens scored entities across all items into a
// single place list ordered by importance descending. Ties keep the order of
// the input items and, within one item, the order entities were extracted.
// Unscored entities are dropped.
func ExtractAndRankPlaces(items []AnalyzedContent, userCtx UserContext) []RankedPlace {
	var places []RankedPlace
	for _, item := range items {
		for _, e := range item.Entities {
			if e.Importance <= 0 {
				continue
			}
			places = append(places, RankedPlace{
				Name:        e.Name,
				Score:       e.Importance,
				Description: e.Description,
				Keywords:    e.Keywords,
				SourceURL:   item.SourceURL,
			})
		}
	}
	sort.SliceStable(places, func(a, b int) bool {
		return places[a].Score > places[b].Score
	})
	return places
}

func splitInterests(interests string) []string {
	if strings.TrimSpace(interests) == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(interests), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
