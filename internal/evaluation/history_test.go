package evaluation

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAppendAndSeries(t *testing.T) {
	h := NewHistory("run-1")
	h.Append(0, 1.5, Result{"NDCG@10": 0.2, "HIT@10": 0.1})
	h.Append(1, 3.0, Result{"NDCG@10": 0.3})
	h.Append(2, 4.5, Result{"HIT@10": 0.2})

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []float64{0.2, 0.3}, h.Series("NDCG@10"))
	assert.Equal(t, []float64{0.1, 0.2}, h.Series("HIT@10"))
	assert.Empty(t, h.Series("MRR@10"))

	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, 2, last.Epoch)

	_, ok = NewHistory("empty").Last()
	assert.False(t, ok)
}

func TestNonIncreasing(t *testing.T) {
	assert.True(t, NonIncreasing([]float64{3, 2, 2, 1}))
	assert.True(t, NonIncreasing([]float64{1, 1, 1}))
	assert.True(t, NonIncreasing([]float64{5}))
	assert.True(t, NonIncreasing(nil))
	assert.False(t, NonIncreasing([]float64{1, 2}))
	assert.False(t, NonIncreasing([]float64{3, 1, 2}))
}

func TestShouldStop(t *testing.T) {
	h := NewHistory("run-1")
	for i, v := range []float64{0.1, 0.2, 0.3, 0.3, 0.25} {
		h.Append(i, 0, Result{"NDCG@10": v})
	}

	// The last three values are 0.3, 0.3, 0.25.
	assert.True(t, h.ShouldStop("NDCG@10", 3))
	// The last four include the improvement from 0.2 to 0.3.
	assert.False(t, h.ShouldStop("NDCG@10", 4))
	// Not enough recorded epochs yet.
	assert.False(t, h.ShouldStop("NDCG@10", 6))
	// Disabled window never stops.
	assert.False(t, h.ShouldStop("NDCG@10", 0))
}

func TestBestEpoch(t *testing.T) {
	h := NewHistory("run-1")
	h.Append(0, 0, Result{"NDCG@10": 0.2})
	h.Append(1, 0, Result{"NDCG@10": 0.4})
	h.Append(2, 0, Result{"NDCG@10": 0.4})
	h.Append(3, 0, Result{"NDCG@10": 0.1})

	epoch, value, ok := h.BestEpoch("NDCG@10")
	require.True(t, ok)
	assert.Equal(t, 1, epoch)
	assert.InDelta(t, 0.4, value, 1e-12)

	_, _, ok = h.BestEpoch("MRR@10")
	assert.False(t, ok)
}

func TestHistorySaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run-1", "history.json")

	h := NewHistory("run-1")
	h.Append(0, 12.5, Result{"NDCG@10": 0.25})
	require.NoError(t, h.Save(path))

	loaded, err := LoadHistory(path)
	require.NoError(t, err)
	assert.Equal(t, "run-1", loaded.RunID)
	require.Equal(t, 1, loaded.Len())
	assert.InDelta(t, 0.25, loaded.Epochs[0].Result["NDCG@10"], 1e-12)
	assert.InDelta(t, 12.5, loaded.Epochs[0].ElapsedSec, 1e-12)
}

func TestLoadHistoryMissing(t *testing.T) {
	_, err := LoadHistory(filepath.Join(t.TempDir(), "history.json"))
	assert.Error(t, err)
}
