// Package datasets fetches evaluation datasets from a dataset service and
// samples candidate lists from them.
package datasets

// EnvConfig holds the dataset service target and local cache location.
type EnvConfig struct {
	BaseURL  string `env:"DATASET_BASE_URL, default=http://127.0.0.1:8700"`
	CacheDir string `env:"DATASET_CACHE_DIR, default=.cache/datasets"`
}

// SplitRef points at one downloadable split of a dataset.
type SplitRef struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	SHA256 string `json:"sha256"`
	Lists  int    `json:"lists"`
	Bytes  int64  `json:"bytes"`
}

// Manifest describes a dataset and its splits.
type Manifest struct {
	Name         string              `json:"name"`
	Version      string              `json:"version"`
	ItemPoolSize int                 `json:"item_pool_size"`
	Splits       map[string]SplitRef `json:"splits"`
}
