package evaluation

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEvaluateListsAveragesOverLists(t *testing.T) {
	ev := New(
		WithTopKs(2),
		WithMetrics(MetricNDCG, MetricHit, MetricMRR),
	)

	scores := [][]float64{
		{0.9, 0.1, 0.5},
		{0.2, 0.8},
	}
	groundTruth := [][]float64{
		{0, 1, 0},
		{0, 1},
	}

	result, err := ev.EvaluateLists(scores, groundTruth)
	require.NoError(t, err)

	// First list ranks its relevant candidate last, second list ranks it
	// first.
	assert.InDelta(t, 0.5, result["NDCG@2"], 1e-12)
	assert.InDelta(t, 0.5, result["HIT@2"], 1e-12)
	assert.InDelta(t, (1.0/3.0+1.0)/2.0, result["MRR@2"], 1e-12)
}

func TestEvaluateListsPaddingIsNeutral(t *testing.T) {
	ev := New(WithTopKs(2), WithMetrics(MetricNDCG, MetricHit, MetricMRR))

	short := []float64{0.7, 0.3}
	shortTruth := []float64{1, 0}
	long := []float64{0.1, 0.2, 0.9, 0.4}
	longTruth := []float64{0, 1, 0, 1}

	alone, err := ev.EvaluateLists([][]float64{short}, [][]float64{shortTruth})
	require.NoError(t, err)
	aloneLong, err := ev.EvaluateLists([][]float64{long}, [][]float64{longTruth})
	require.NoError(t, err)

	together, err := ev.EvaluateLists(
		[][]float64{short, long},
		[][]float64{shortTruth, longTruth},
	)
	require.NoError(t, err)

	for _, key := range []string{"NDCG@2", "HIT@2", "MRR@2"} {
		want := (alone[key] + aloneLong[key]) / 2
		assert.InDelta(t, want, together[key], 1e-12, key)
	}
}

func TestEvaluateListsValidation(t *testing.T) {
	ev := New()

	_, err := ev.EvaluateLists([][]float64{{0.1}}, [][]float64{{1}, {0}})
	assert.Error(t, err)

	_, err = ev.EvaluateLists([][]float64{{0.1, 0.2}}, [][]float64{{1}})
	assert.Error(t, err)

	_, err = ev.EvaluateLists([][]float64{{}}, [][]float64{{}})
	assert.Error(t, err)
}

func TestEvaluateMatrixDimsMustMatch(t *testing.T) {
	ev := New()

	scores := mat.NewDense(2, 3, nil)
	truth := mat.NewDense(2, 2, nil)

	_, err := ev.EvaluateMatrix(scores, truth)
	assert.Error(t, err)
}

func TestEvaluatorDefaults(t *testing.T) {
	ev := New()

	scores := mat.NewDense(1, 3, []float64{0.9, 0.5, 0.1})
	truth := mat.NewDense(1, 3, []float64{1, 0, 0})

	result, err := ev.EvaluateMatrix(scores, truth)
	require.NoError(t, err)

	require.Contains(t, result, "NDCG@10")
	require.Contains(t, result, "HIT@10")
	assert.InDelta(t, 1.0, result["NDCG@10"], 1e-12)
	assert.InDelta(t, 1.0, result["HIT@10"], 1e-12)
}

func TestHitThresholdOption(t *testing.T) {
	scores := [][]float64{{0.9, 0.1}, {0.9, 0.1}}
	groundTruth := [][]float64{{2, 1}, {1, 2}}

	strict := New(WithTopKs(1), WithMetrics(MetricHit), WithHitThreshold(2))
	result, err := strict.EvaluateLists(scores, groundTruth)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, result["HIT@1"], 1e-12)

	lenient := New(WithTopKs(1), WithMetrics(MetricHit))
	result, err = lenient.EvaluateLists(scores, groundTruth)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result["HIT@1"], 1e-12)
}

func TestParseMetrics(t *testing.T) {
	metrics := ParseMetrics([]string{"ndcg", " HIT ", "bogus", "mrr"})
	assert.Equal(t, []Metric{MetricNDCG, MetricHit, MetricMRR}, metrics)
}

func BenchmarkEvaluateMatrix(b *testing.B) {
	sizes := []struct {
		lists      int
		candidates int
	}{
		{250, 100},
		{1000, 100},
	}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Lists%d_Candidates%d", size.lists, size.candidates), func(b *testing.B) {
			scoreData := make([]float64, size.lists*size.candidates)
			truthData := make([]float64, size.lists*size.candidates)
			for i := range scoreData {
				scoreData[i] = rand.Float64()
			}
			for i := 0; i < size.lists; i++ {
				truthData[i*size.candidates+rand.IntN(size.candidates)] = 1
			}

			scores := mat.NewDense(size.lists, size.candidates, scoreData)
			truth := mat.NewDense(size.lists, size.candidates, truthData)
			ev := New(WithTopKs(5, 10), WithMetrics(MetricNDCG, MetricHit, MetricMRR))

			b.ResetTimer()
			for b.Loop() {
				_, _ = ev.EvaluateMatrix(scores, truth)
			}
		})
	}
}
