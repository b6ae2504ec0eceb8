package ranking

// Hit reports whether any of the top k scored candidates is relevant,
// returning 1 or 0. A candidate counts as relevant when its label reaches
// threshold; use threshold 1 for binary labels. Returns 0 for mismatched
// lengths or k <= 0.
func Hit(relevance, scores []float64, k int, threshold float64) float64 {
	if k <= 0 || len(relevance) == 0 || len(relevance) != len(scores) {
		return 0.0
	}
	if k > len(relevance) {
		k = len(relevance)
	}

	order := rankDescending(scores)

	for rank := 0; rank < k; rank++ {
		if relevance[order[rank]] >= threshold {
			return 1.0
		}
	}
	return 0.0
}
