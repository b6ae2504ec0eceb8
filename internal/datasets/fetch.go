package datasets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"

	"github.com/tensorplex-labs/rankbench/internal/runlog"
)

// Fetcher downloads dataset manifests and split files, caching split files
// on disk keyed by their checksum.
type Fetcher struct {
	httpClient *retryablehttp.Client
	baseURL    string
	cacheDir   string
}

func NewFetcher() (*Fetcher, error) {
	log.Debug().Msg("creating new dataset fetcher")

	ctx := context.Background()

	var envCfg EnvConfig
	if err := envconfig.Process(ctx, &envCfg); err != nil {
		return nil, fmt.Errorf("process dataset environment: %w", err)
	}

	log.Debug().
		Str("base_url", envCfg.BaseURL).
		Str("cache_dir", envCfg.CacheDir).
		Msg("dataset environment loaded")

	client := retryablehttp.NewClient()
	client.RetryMax = 5
	client.HTTPClient.Timeout = 30 * time.Second
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 20 * time.Second

	client.Logger = nil

	log.Info().
		Str("base_url", envCfg.BaseURL).
		Int("retry_max", client.RetryMax).
		Str("timeout", client.HTTPClient.Timeout.String()).
		Msg("dataset fetcher initialized successfully")

	return &Fetcher{
		httpClient: client,
		baseURL:    envCfg.BaseURL,
		cacheDir:   envCfg.CacheDir,
	}, nil
}

func (f *Fetcher) get(endpoint string) ([]byte, error) {
	url := endpoint
	if !strings.HasPrefix(endpoint, "http") {
		url = f.baseURL + endpoint
	}

	log.Debug().Str("url", url).Msg("making dataset request")

	req, err := retryablehttp.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("dataset request %s returned status %d", url, resp.StatusCode)
	}

	log.Debug().
		Str("url", url).
		Int("status_code", resp.StatusCode).
		Int("response_body_length", len(body)).
		Msg("dataset request completed")

	return body, nil
}

// FetchManifest fetches and parses the manifest of the named dataset.
func (f *Fetcher) FetchManifest(name string) (*Manifest, error) {
	log.Info().Str("dataset", name).Msg("fetching dataset manifest")

	body, err := f.get(fmt.Sprintf("/datasets/%s/manifest.json", name))
	if err != nil {
		return nil, fmt.Errorf("fetch manifest for %s: %w", name, err)
	}

	manifest := &Manifest{}
	if err := sonic.Unmarshal(body, manifest); err != nil {
		return nil, fmt.Errorf("parse manifest for %s: %w", name, err)
	}
	if len(manifest.Splits) == 0 {
		return nil, fmt.Errorf("manifest for %s lists no splits", name)
	}

	log.Info().
		Str("dataset", manifest.Name).
		Str("version", manifest.Version).
		Int("splits", len(manifest.Splits)).
		Msg("dataset manifest fetched")

	return manifest, nil
}

// Download fetches a split file into the cache and returns its local path.
// A cached file whose checksum still matches is reused without a request.
func (f *Fetcher) Download(split SplitRef) (string, error) {
	dest := filepath.Join(f.cacheDir, filepath.Base(split.URL))

	if cached, err := fileChecksumMatches(dest, split.SHA256); err == nil && cached {
		log.Debug().Str("path", dest).Msg("split already cached, skipping download")
		return dest, nil
	}

	log.Info().
		Str("split", split.Name).
		Str("url", split.URL).
		Msg("downloading dataset split")

	body, err := f.get(split.URL)
	if err != nil {
		return "", fmt.Errorf("download split %s: %w", split.Name, err)
	}

	if split.SHA256 != "" {
		sum := sha256.Sum256(body)
		digest := hex.EncodeToString(sum[:])
		if !strings.EqualFold(digest, split.SHA256) {
			return "", fmt.Errorf("split %s checksum mismatch: got %s, want %s",
				split.Name, digest, split.SHA256)
		}
	} else {
		log.Warn().Str("split", split.Name).Msg("split has no checksum, skipping verification")
	}

	if err := runlog.EnsureDir(dest); err != nil {
		return "", err
	}
	if err := os.WriteFile(dest, body, 0o644); err != nil {
		return "", fmt.Errorf("write split %s: %w", dest, err)
	}

	log.Info().
		Str("split", split.Name).
		Str("path", dest).
		Int("bytes", len(body)).
		Msg("dataset split downloaded")

	return dest, nil
}

// fileChecksumMatches reports whether path exists and hashes to want. An
// empty want matches any existing file.
func fileChecksumMatches(path, want string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	if want == "" {
		return true, nil
	}

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return false, err
	}
	return strings.EqualFold(hex.EncodeToString(hasher.Sum(nil)), want), nil
}
