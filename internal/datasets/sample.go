package datasets

import (
	"fmt"
	"math/rand/v2"
)

// SampleNegatives draws n distinct item ids from [0, poolSize) that are not
// marked positive. Draws are rejection sampled, so the result is
// deterministic for a given source.
func SampleNegatives(r *rand.Rand, positives map[int]bool, poolSize, n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative sample count %d", n)
	}

	inPool := 0
	for id, positive := range positives {
		if positive && id >= 0 && id < poolSize {
			inPool++
		}
	}
	if poolSize-inPool < n {
		return nil, fmt.Errorf("pool of %d items holds %d negatives, need %d",
			poolSize, poolSize-inPool, n)
	}

	drawn := make(map[int]bool, n)
	out := make([]int, 0, n)
	for len(out) < n {
		item := r.IntN(poolSize)
		if positives[item] || drawn[item] {
			continue
		}
		drawn[item] = true
		out = append(out, item)
	}
	return out, nil
}

// CandidateList builds a leave one out evaluation list: the positive item
// followed by n sampled negatives, with matching binary labels.
func CandidateList(r *rand.Rand, positiveID, poolSize, n int) (ids []int, labels []float64, err error) {
	negatives, err := SampleNegatives(r, map[int]bool{positiveID: true}, poolSize, n)
	if err != nil {
		return nil, nil, err
	}

	ids = append([]int{positiveID}, negatives...)
	labels = make([]float64, len(ids))
	labels[0] = 1
	return ids, labels, nil
}
