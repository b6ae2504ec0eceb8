package evaluation

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rankbench/internal/artifacts"
)

// Runner walks the epoch artifacts of one run, evaluates the epochs that are
// due and tracks their results.
type Runner struct {
	evaluator *Evaluator
	cadence   *Cadence
	history   *History

	stopKey    string
	stopWindow int
}

func NewRunner(runID string, evaluator *Evaluator, cadence *Cadence) *Runner {
	if cadence == nil {
		cadence = NewCadence(1)
	}
	return &Runner{
		evaluator: evaluator,
		cadence:   cadence,
		history:   NewHistory(runID),
	}
}

// SetEarlyStop makes the runner report a stop once key has gone window
// recorded epochs without improving. A window of 0 disables early stopping.
func (r *Runner) SetEarlyStop(key string, window int) {
	r.stopKey = key
	r.stopWindow = window
}

func (r *Runner) History() *History {
	return r.history
}

// ProcessBatch evaluates one epoch batch if its epoch is due. It returns the
// result, nil when the epoch was skipped, and whether the early stop
// criterion is now met.
func (r *Runner) ProcessBatch(batch *artifacts.EvalBatch, elapsedSec float64) (Result, bool, error) {
	if !r.cadence.ShouldTrigger(batch.Epoch) {
		log.Debug().Int("epoch", batch.Epoch).Msg("Epoch not due for evaluation, skipping")
		return nil, false, nil
	}

	result, err := r.evaluator.EvaluateLists(batch.Scores, batch.GroundTruth)
	if err != nil {
		return nil, false, fmt.Errorf("evaluate epoch %d: %w", batch.Epoch, err)
	}

	r.cadence.MarkTriggered(batch.Epoch)
	if r.history.RunID == "" {
		r.history.RunID = batch.RunID
	}
	r.history.Append(batch.Epoch, elapsedSec, result)

	log.Info().
		Int("epoch", batch.Epoch).
		Str("split", batch.Split).
		Int("lists", len(batch.Scores)).
		Str("result", FormatResult(result)).
		Msg("Evaluated epoch")

	if r.stopWindow > 0 && r.history.ShouldStop(r.stopKey, r.stopWindow) {
		log.Info().
			Str("metric", r.stopKey).
			Int("window", r.stopWindow).
			Msg("Early stop criterion met")
		return result, true, nil
	}
	return result, false, nil
}

// ProcessDir evaluates every artifact under dir in epoch order, stopping
// when the early stop criterion fires.
func (r *Runner) ProcessDir(dir string) (*History, error) {
	paths, err := artifacts.ListBatches(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no artifacts found under %s", dir)
	}

	start := time.Now()
	for _, path := range paths {
		batch, err := artifacts.Load(path)
		if err != nil {
			return nil, err
		}
		_, stop, err := r.ProcessBatch(batch, time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}
	}
	return r.history, nil
}
