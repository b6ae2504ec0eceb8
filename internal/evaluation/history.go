package evaluation

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/tensorplex-labs/rankbench/internal/runlog"
)

// EpochResult pairs an epoch with its evaluation result and the elapsed run
// time when it was recorded.
type EpochResult struct {
	Epoch      int     `json:"epoch"`
	ElapsedSec float64 `json:"elapsed_seconds"`
	RecordedAt string  `json:"recorded_at"`
	Result     Result  `json:"result"`
}

// History records the evaluation results of one run in epoch order.
type History struct {
	RunID  string        `json:"run_id"`
	Epochs []EpochResult `json:"epochs"`
}

func NewHistory(runID string) *History {
	return &History{RunID: runID}
}

// Append records the result of an epoch.
func (h *History) Append(epoch int, elapsedSec float64, result Result) {
	h.Epochs = append(h.Epochs, EpochResult{
		Epoch:      epoch,
		ElapsedSec: elapsedSec,
		RecordedAt: runlog.Timestamp(),
		Result:     result,
	})
}

func (h *History) Len() int {
	return len(h.Epochs)
}

// Last returns the most recent epoch result.
func (h *History) Last() (EpochResult, bool) {
	if len(h.Epochs) == 0 {
		return EpochResult{}, false
	}
	return h.Epochs[len(h.Epochs)-1], true
}

// Series extracts the recorded values of one result key in epoch order.
// Epochs that did not record the key are skipped.
func (h *History) Series(key string) []float64 {
	values := make([]float64, 0, len(h.Epochs))
	for _, epoch := range h.Epochs {
		if value, ok := epoch.Result[key]; ok {
			values = append(values, value)
		}
	}
	return values
}

// BestEpoch returns the epoch with the highest value of key. The earliest
// epoch wins ties. ok is false when no epoch recorded the key.
func (h *History) BestEpoch(key string) (epoch int, value float64, ok bool) {
	for _, e := range h.Epochs {
		v, recorded := e.Result[key]
		if !recorded {
			continue
		}
		if !ok || v > value {
			epoch, value, ok = e.Epoch, v, true
		}
	}
	return epoch, value, ok
}

// ShouldStop reports whether the watched key has gone window recorded epochs
// without improving. It stays false until window results are recorded.
func (h *History) ShouldStop(key string, window int) bool {
	if window <= 0 {
		return false
	}
	series := h.Series(key)
	if len(series) < window {
		return false
	}
	return NonIncreasing(series[len(series)-window:])
}

// NonIncreasing reports whether every adjacent pair satisfies x >= y.
func NonIncreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] > values[i-1] {
			return false
		}
	}
	return true
}

// Save writes the history as JSON, creating the run directory if needed.
func (h *History) Save(path string) error {
	payload, err := sonic.Marshal(h)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := runlog.EnsureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write history %s: %w", path, err)
	}
	return nil
}

// LoadHistory reads a history written by Save.
func LoadHistory(path string) (*History, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", path, err)
	}
	history := &History{}
	if err := sonic.Unmarshal(payload, history); err != nil {
		return nil, fmt.Errorf("unmarshal history %s: %w", path, err)
	}
	return history, nil
}
