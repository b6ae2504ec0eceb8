package ranking

// Precision returns the fraction of the top k scored candidates that are
// relevant. The denominator is the requested k even when the list is shorter,
// so padded and unpadded lists score the same. Returns 0 for mismatched
// lengths or k <= 0.
func Precision(relevance, scores []float64, k int, threshold float64) float64 {
	if k <= 0 || len(relevance) == 0 || len(relevance) != len(scores) {
		return 0.0
	}
	depth := k
	if depth > len(relevance) {
		depth = len(relevance)
	}

	order := rankDescending(scores)

	hits := 0
	for rank := 0; rank < depth; rank++ {
		if relevance[order[rank]] >= threshold {
			hits++
		}
	}
	return float64(hits) / float64(k)
}

// Recall returns the fraction of all relevant candidates that appear in the
// top k. Returns 0 when the list holds no relevant candidate.
func Recall(relevance, scores []float64, k int, threshold float64) float64 {
	if k <= 0 || len(relevance) == 0 || len(relevance) != len(scores) {
		return 0.0
	}
	if k > len(relevance) {
		k = len(relevance)
	}

	relevant := 0
	for _, rel := range relevance {
		if rel >= threshold {
			relevant++
		}
	}
	if relevant == 0 {
		return 0.0
	}

	order := rankDescending(scores)

	hits := 0
	for rank := 0; rank < k; rank++ {
		if relevance[order[rank]] >= threshold {
			hits++
		}
	}
	return float64(hits) / float64(relevant)
}

// AveragePrecision averages the precision observed at each relevant rank over
// the full list. Returns 0 when the list holds no relevant candidate.
func AveragePrecision(relevance, scores []float64, threshold float64) float64 {
	if len(relevance) == 0 || len(relevance) != len(scores) {
		return 0.0
	}

	order := rankDescending(scores)

	hits := 0
	sum := 0.0
	for rank, idx := range order {
		if relevance[idx] >= threshold {
			hits++
			sum += float64(hits) / float64(rank+1)
		}
	}
	if hits == 0 {
		return 0.0
	}
	return sum / float64(hits)
}
