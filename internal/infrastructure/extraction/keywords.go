package extraction

import "sort"

const maxKeywords = 5

// extractKeywords tokenizes normalized text into Thai letter runs, drops
// stopwords, and returns the top tokens by frequency. Ties keep first-seen
// order so output is deterministic for a given input.
func extractKeywords(normalized string) []string {
	counts := make(map[string]int)
	var order []string
	for _, tok := range thaiTokenPattern.FindAllString(normalized, -1) {
		if _, skip := stopwords[tok]; skip {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}
	if len(order) == 0 {
		return nil
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}
