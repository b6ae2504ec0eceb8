package ranking

import (
	"gonum.org/v1/gonum/floats"
)

// MRR weights each candidate's relevance by the reciprocal of its rank over
// the full list and normalizes by the total relevance. With a single relevant
// candidate this is the classic reciprocal rank. Returns 0 when the list
// carries no relevance at all or the lengths do not match.
func MRR(relevance, scores []float64) float64 {
	if len(relevance) == 0 || len(relevance) != len(scores) {
		return 0.0
	}

	total := floats.Sum(relevance)
	if total == 0 {
		return 0.0
	}

	order := rankDescending(scores)

	sum := 0.0
	for rank, idx := range order {
		sum += relevance[idx] / float64(rank+1)
	}
	return sum / total
}
