package evaluation

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tensorplex-labs/rankbench/internal/batching"
	"github.com/tensorplex-labs/rankbench/internal/ranking"
)

// Evaluator scores candidate lists with a fixed set of metrics and cutoffs.
// MRR is computed over the full list; its value repeats under each requested
// cutoff key.
type Evaluator struct {
	topKs        []int
	metrics      []Metric
	hitThreshold float64
}

type EvaluatorOption func(*Evaluator)

func WithTopKs(topKs ...int) EvaluatorOption {
	return func(ev *Evaluator) {
		if len(topKs) > 0 {
			ev.topKs = topKs
		}
	}
}

func WithMetrics(metrics ...Metric) EvaluatorOption {
	return func(ev *Evaluator) {
		if len(metrics) > 0 {
			ev.metrics = metrics
		}
	}
}

// WithHitThreshold sets the relevance level a label must reach to count as a
// hit. The default of 1 matches binary labels.
func WithHitThreshold(threshold float64) EvaluatorOption {
	return func(ev *Evaluator) {
		ev.hitThreshold = threshold
	}
}

func New(opts ...EvaluatorOption) *Evaluator {
	ev := &Evaluator{
		topKs:        []int{10},
		metrics:      []Metric{MetricNDCG, MetricHit},
		hitThreshold: 1,
	}

	for _, opt := range opts {
		opt(ev)
	}

	return ev
}

// EvaluateLists scores ragged candidate lists. Lists are stacked into dense
// matrices first; padded slots carry a score of -Inf and a label of 0, so
// they rank last and never count as relevant.
func (ev *Evaluator) EvaluateLists(scores, groundTruth [][]float64) (Result, error) {
	if len(scores) != len(groundTruth) {
		return nil, fmt.Errorf("%d score lists but %d ground truth lists",
			len(scores), len(groundTruth))
	}
	for i := range scores {
		if len(scores[i]) == 0 {
			return nil, fmt.Errorf("list %d is empty", i)
		}
		if len(scores[i]) != len(groundTruth[i]) {
			return nil, fmt.Errorf("list %d holds %d scores but %d labels",
				i, len(scores[i]), len(groundTruth[i]))
		}
	}

	scoreBlocks := make([]mat.Matrix, len(scores))
	truthBlocks := make([]mat.Matrix, len(groundTruth))
	for i := range scores {
		scoreBlocks[i] = mat.NewVecDense(len(scores[i]), scores[i])
		truthBlocks[i] = mat.NewVecDense(len(groundTruth[i]), groundTruth[i])
	}

	scoreMat, err := batching.PadAndStack(scoreBlocks, math.Inf(-1))
	if err != nil {
		return nil, fmt.Errorf("stack score lists: %w", err)
	}
	truthMat, err := batching.PadAndStack(truthBlocks, 0)
	if err != nil {
		return nil, fmt.Errorf("stack ground truth lists: %w", err)
	}

	return ev.EvaluateMatrix(scoreMat, truthMat)
}

// EvaluateMatrix scores one candidate list per row and averages each metric
// over all rows.
func (ev *Evaluator) EvaluateMatrix(scores, groundTruth *mat.Dense) (Result, error) {
	scoreRows, scoreCols := scores.Dims()
	truthRows, truthCols := groundTruth.Dims()
	if scoreRows != truthRows || scoreCols != truthCols {
		return nil, fmt.Errorf("score matrix is %dx%d but ground truth is %dx%d",
			scoreRows, scoreCols, truthRows, truthCols)
	}

	perList := make(map[string][]float64, len(ev.metrics)*len(ev.topKs))
	for i := 0; i < scoreRows; i++ {
		scoreRow := mat.Row(nil, i, scores)
		truthRow := mat.Row(nil, i, groundTruth)
		for _, metric := range ev.metrics {
			for _, k := range ev.topKs {
				key := metric.Key(k)
				perList[key] = append(perList[key], ev.scoreList(metric, truthRow, scoreRow, k))
			}
		}
	}

	result := make(Result, len(perList))
	for key, values := range perList {
		result[key] = stat.Mean(values, nil)
	}
	return result, nil
}

func (ev *Evaluator) scoreList(metric Metric, labels, scores []float64, k int) float64 {
	switch metric {
	case MetricNDCG:
		return ranking.NDCG(labels, scores, k)
	case MetricHit:
		return ranking.Hit(labels, scores, k, ev.hitThreshold)
	case MetricMRR:
		return ranking.MRR(labels, scores)
	case MetricPrecision:
		return ranking.Precision(labels, scores, k, ev.hitThreshold)
	case MetricRecall:
		return ranking.Recall(labels, scores, k, ev.hitThreshold)
	}

	log.Warn().Str("metric", string(metric)).Msg("Unknown metric, scoring as 0")
	return 0.0
}
