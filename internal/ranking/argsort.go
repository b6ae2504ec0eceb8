package ranking

import (
	"gonum.org/v1/gonum/floats"
)

// rankDescending returns candidate indices ordered from highest score to
// lowest. The relative order of equal scores is unspecified.
func rankDescending(scores []float64) []int {
	ascending := make([]float64, len(scores))
	copy(ascending, scores)

	inds := make([]int, len(scores))
	floats.Argsort(ascending, inds)

	order := make([]int, len(inds))
	for i := range inds {
		order[i] = inds[len(inds)-1-i]
	}
	return order
}
