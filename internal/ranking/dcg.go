// Package ranking contains the ranking quality metrics used to score
// candidate lists against ground truth relevance labels
package ranking

import (
	"math"
)

// DCG calculates discounted cumulative gain over the top k candidates.
// Candidates are ranked by descending score, each contributing a gain of
// 2^relevance - 1 discounted by log2(rank + 2). The cutoff is clamped to the
// list length. Returns 0 for an empty list, mismatched lengths, or k <= 0.
func DCG(relevance, scores []float64, k int) float64 {
	if k <= 0 || len(relevance) == 0 || len(relevance) != len(scores) {
		return 0.0
	}
	if k > len(relevance) {
		k = len(relevance)
	}

	order := rankDescending(scores)

	sum := 0.0
	for rank := 0; rank < k; rank++ {
		gain := math.Pow(2, relevance[order[rank]]) - 1
		sum += gain / math.Log2(float64(rank)+2)
	}
	return sum
}

// NDCG normalizes DCG by the ideal ordering, where the relevance labels rank
// themselves. A perfect ranking scores 1. Returns 0 when the ideal DCG is
// zero, i.e. the list carries no positive relevance at the cutoff.
func NDCG(relevance, scores []float64, k int) float64 {
	ideal := DCG(relevance, relevance, k)
	if ideal == 0 {
		return 0.0
	}
	return DCG(relevance, scores, k) / ideal
}
