package hyperparams

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadForResolvesModelDataPath(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "bprmf_ml1m.yaml", `
model: bprmf
data: ml1m
lr: 0.01
batch_size: 512
topks: [5, 10]
metrics: [NDCG, HIT, MRR]
emb_size: 64
`)

	params, err := LoadFor(dir, "bprmf", "ml1m")
	require.NoError(t, err)

	assert.Equal(t, "bprmf", params.Model)
	assert.Equal(t, "ml1m", params.Data)
	assert.Equal(t, 0.01, params.LearningRate)
	assert.Equal(t, 512, params.BatchSize)
	assert.Equal(t, []int{5, 10}, params.TopKs)
	assert.Equal(t, []string{"NDCG", "HIT", "MRR"}, params.Metrics)

	// Unmodelled keys land in Extra.
	require.Contains(t, params.Extra, "emb_size")
	assert.Equal(t, 64, params.Extra["emb_size"])
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "minimal.yaml", "model: gru4rec\n")

	params, err := Load(filepath.Join(dir, "minimal.yaml"))
	require.NoError(t, err)

	defaults := Defaults()
	assert.Equal(t, defaults.Seed, params.Seed)
	assert.Equal(t, defaults.Epochs, params.Epochs)
	assert.Equal(t, defaults.TopKs, params.TopKs)
	assert.Equal(t, defaults.HitThreshold, params.HitThreshold)
	assert.Nil(t, params.Extra)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFor(t.TempDir(), "bprmf", "nosuch")
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "broken.yaml", "model: [unclosed\n")

	_, err := Load(filepath.Join(dir, "broken.yaml"))
	assert.Error(t, err)
}

func TestDefaultSeed(t *testing.T) {
	assert.Equal(t, int64(1), Defaults().Seed)
}
