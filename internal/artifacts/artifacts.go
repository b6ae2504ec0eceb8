// Package artifacts persists per epoch evaluation batches as zstd compressed
// JSON so training and evaluation can run as separate processes.
package artifacts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"

	"github.com/tensorplex-labs/rankbench/internal/runlog"
)

// Ext is the artifact file suffix.
const Ext = ".json.zst"

// EvalBatch carries the scored candidate lists of one epoch and split. Lists
// are ragged; rows are padded at evaluation time, not at rest.
type EvalBatch struct {
	RunID       string      `json:"run_id"`
	Epoch       int         `json:"epoch"`
	Split       string      `json:"split"`
	ParamCount  int         `json:"param_count,omitempty"`
	ListIDs     []string    `json:"list_ids,omitempty"`
	Scores      [][]float64 `json:"scores"`
	GroundTruth [][]float64 `json:"ground_truth"`
}

// Validate checks that scores and ground truth line up list by list.
func (b *EvalBatch) Validate() error {
	if len(b.Scores) == 0 {
		return fmt.Errorf("eval batch holds no score lists")
	}
	if len(b.Scores) != len(b.GroundTruth) {
		return fmt.Errorf("eval batch holds %d score lists but %d ground truth lists",
			len(b.Scores), len(b.GroundTruth))
	}
	if len(b.ListIDs) != 0 && len(b.ListIDs) != len(b.Scores) {
		return fmt.Errorf("eval batch holds %d list ids for %d lists",
			len(b.ListIDs), len(b.Scores))
	}
	for i := range b.Scores {
		if len(b.Scores[i]) == 0 {
			return fmt.Errorf("list %d is empty", i)
		}
		if len(b.Scores[i]) != len(b.GroundTruth[i]) {
			return fmt.Errorf("list %d holds %d scores but %d labels",
				i, len(b.Scores[i]), len(b.GroundTruth[i]))
		}
	}
	return nil
}

// BatchPath resolves the artifact file for an epoch. Epochs are zero padded
// so lexical order matches epoch order.
func BatchPath(dir string, epoch int) string {
	return filepath.Join(dir, fmt.Sprintf("epoch_%04d%s", epoch, Ext))
}

// Save validates and writes a batch to path.
func Save(path string, batch *EvalBatch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	payload, err := sonic.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal eval batch: %w", err)
	}

	if err := runlog.EnsureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact %s: %w", path, err)
	}

	encoder, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	if _, err := encoder.Write(payload); err != nil {
		encoder.Close()
		f.Close()
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	if err := encoder.Close(); err != nil {
		f.Close()
		return fmt.Errorf("flush artifact %s: %w", path, err)
	}
	return f.Close()
}

// Load reads and validates the batch stored at path.
func Load(path string) (*EvalBatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close()

	decoder, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	payload, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}

	batch := &EvalBatch{}
	if err := sonic.Unmarshal(payload, batch); err != nil {
		return nil, fmt.Errorf("unmarshal artifact %s: %w", path, err)
	}
	if err := batch.Validate(); err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	return batch, nil
}

// ListBatches returns the artifact files under dir in epoch order. ReadDir
// sorts by name, which matches epoch order for zero padded file names.
func ListBatches(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read artifact dir %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
