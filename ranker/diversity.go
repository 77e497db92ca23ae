package ranker

import (
	"strings"
)

// SelectTopCandidates picks up to count items from the ranked list while
// keeping topics and titles pairwise distinct, so one batch never generates
// near-duplicate articles.
//
// First pass: walk the list in rank order, skipping any item whose normalized
// title was already chosen or whose topic keywords intersect the used-topic
// set. Second, relaxed pass: if the first pass came up short, fill the batch
// from the remaining items skipping only exact title duplicates. The relaxed
// pass guarantees forward progress whenever supply exists.
func SelectTopCandidates(ranked []RankedItem, count int) []RankedItem {
	if len(ranked) == 0 || count <= 0 {
		return []RankedItem{}
	}

	selected := []RankedItem{}
	selectedIdx := map[int]bool{}
	usedTopics := map[string]bool{}
	usedTitles := map[string]bool{}

	for i := range ranked {
		if len(selected) >= count {
			break
		}
		item := &ranked[i]

		normalizedTitle := strings.ToLower(strings.TrimSpace(item.Title))
		if normalizedTitle != "" && usedTitles[normalizedTitle] {
			continue
		}

		keywords := TopicKeywords(item)
		similar := false
		for _, keyword := range keywords {
			if usedTopics[strings.ToLower(keyword)] {
				similar = true
				break
			}
		}
		if similar {
			continue
		}

		selected = append(selected, *item)
		selectedIdx[i] = true
		for _, keyword := range keywords {
			usedTopics[strings.ToLower(keyword)] = true
		}
		if normalizedTitle != "" {
			usedTitles[normalizedTitle] = true
		}
	}

	// Relaxed fallback: prefer an on-topic duplicate over an empty batch.
	if len(selected) < count {
		for i := range ranked {
			if len(selected) >= count {
				break
			}
			if selectedIdx[i] {
				continue
			}
			item := &ranked[i]
			normalizedTitle := strings.ToLower(strings.TrimSpace(item.Title))
			if normalizedTitle != "" && usedTitles[normalizedTitle] {
				continue
			}
			selected = append(selected, *item)
			selectedIdx[i] = true
			if normalizedTitle != "" {
				usedTitles[normalizedTitle] = true
			}
		}
	}

	if len(selected) > count {
		selected = selected[:count]
	}
	return selected
}
