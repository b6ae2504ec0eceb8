// Package evaluation turns scored candidate lists into averaged ranking
// metrics and tracks them across epochs
package evaluation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Metric names a ranking quality metric.
type Metric string

const (
	MetricNDCG      Metric = "NDCG"
	MetricHit       Metric = "HIT"
	MetricMRR       Metric = "MRR"
	MetricPrecision Metric = "PRECISION"
	MetricRecall    Metric = "RECALL"
)

// Key renders the result key for a metric at a cutoff, e.g. "NDCG@10".
func (m Metric) Key(k int) string {
	return fmt.Sprintf("%s@%d", m, k)
}

// Result maps "METRIC@K" keys to values averaged over all evaluated lists.
type Result map[string]float64

// SplitKey breaks a result key into its metric name and cutoff. ok is false
// for keys that do not follow the METRIC@K form.
func SplitKey(key string) (name string, k int, ok bool) {
	name, suffix, found := strings.Cut(key, "@")
	if !found {
		return "", 0, false
	}
	k, err := strconv.Atoi(suffix)
	if err != nil {
		return "", 0, false
	}
	return name, k, true
}

// ParseMetrics maps metric names onto Metric values, ignoring case. Unknown
// names are dropped with a warning so one typo does not sink a run.
func ParseMetrics(names []string) []Metric {
	metrics := make([]Metric, 0, len(names))
	for _, name := range names {
		switch Metric(strings.ToUpper(strings.TrimSpace(name))) {
		case MetricNDCG:
			metrics = append(metrics, MetricNDCG)
		case MetricHit:
			metrics = append(metrics, MetricHit)
		case MetricMRR:
			metrics = append(metrics, MetricMRR)
		case MetricPrecision:
			metrics = append(metrics, MetricPrecision)
		case MetricRecall:
			metrics = append(metrics, MetricRecall)
		default:
			log.Warn().Str("metric", name).Msg("Unknown metric name, skipping")
		}
	}
	return metrics
}
