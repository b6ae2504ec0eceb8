package datasets

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/tensorplex-labs/rankbench/internal/rng"
)

func TestSampleNegatives_Deterministic(t *testing.T) {
	positives := map[int]bool{3: true, 7: true}

	first, err := SampleNegatives(rng.Source(42), positives, 100, 10)
	if err != nil {
		t.Fatalf("SampleNegatives failed: %v", err)
	}
	second, err := SampleNegatives(rng.Source(42), positives, 100, 10)
	if err != nil {
		t.Fatalf("SampleNegatives failed: %v", err)
	}

	if len(first) != 10 {
		t.Fatalf("expected 10 samples, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different samples: %v vs %v", first, second)
		}
	}

	seen := map[int]bool{}
	for _, id := range first {
		if id < 0 || id >= 100 {
			t.Fatalf("sample %d out of range", id)
		}
		if positives[id] {
			t.Fatalf("sample %d is a positive", id)
		}
		if seen[id] {
			t.Fatalf("sample %d drawn twice", id)
		}
		seen[id] = true
	}
}

func TestSampleNegatives_WorkerShardsDiverge(t *testing.T) {
	a, err := SampleNegatives(rng.WorkerSource(rng.DefaultSeed, 0), nil, 1000, 10)
	if err != nil {
		t.Fatalf("SampleNegatives failed: %v", err)
	}
	b, err := SampleNegatives(rng.WorkerSource(rng.DefaultSeed, 1), nil, 1000, 10)
	if err != nil {
		t.Fatalf("SampleNegatives failed: %v", err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different workers drew identical samples")
	}
}

func TestSampleNegatives_PoolExhausted(t *testing.T) {
	positives := map[int]bool{0: true, 1: true, 2: true}
	if _, err := SampleNegatives(rng.Source(1), positives, 5, 3); err == nil {
		t.Fatal("expected error when pool cannot cover the sample")
	}
}

func TestSampleNegatives_ExactFit(t *testing.T) {
	positives := map[int]bool{0: true, 1: true}
	out, err := SampleNegatives(rng.Source(1), positives, 5, 3)
	if err != nil {
		t.Fatalf("SampleNegatives failed: %v", err)
	}

	sort.Ints(out)
	want := []int{2, 3, 4}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, out)
		}
	}
}

func TestCandidateList(t *testing.T) {
	ids, labels, err := CandidateList(rng.Source(7), 42, 1000, 99)
	if err != nil {
		t.Fatalf("CandidateList failed: %v", err)
	}

	if len(ids) != 100 || len(labels) != 100 {
		t.Fatalf("expected 100 candidates, got %d ids and %d labels", len(ids), len(labels))
	}
	if ids[0] != 42 || labels[0] != 1 {
		t.Fatalf("positive item must lead the list, got id %d label %f", ids[0], labels[0])
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] == 42 {
			t.Fatalf("positive item sampled as negative at %d", i)
		}
		if labels[i] != 0 {
			t.Fatalf("negative at %d carries label %f", i, labels[i])
		}
	}
}

func TestFetchManifestAndDownload(t *testing.T) {
	splitBody := []byte(`{"scores":[[0.9,0.1]],"ground_truth":[[1,0]]}`)
	sum := sha256.Sum256(splitBody)
	digest := hex.EncodeToString(sum[:])

	serveSplit := true
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/datasets/ml1m/manifest.json":
			manifest := Manifest{
				Name:         "ml1m",
				Version:      "1",
				ItemPoolSize: 3706,
				Splits: map[string]SplitRef{
					"dev": {Name: "dev", URL: "/files/dev.json", SHA256: digest, Lists: 1},
				},
			}
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(manifest); err != nil {
				panic(err)
			}
		case "/files/dev.json":
			if !serveSplit {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if _, err := w.Write(splitBody); err != nil {
				panic(err)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	t.Setenv("DATASET_BASE_URL", ts.URL)
	t.Setenv("DATASET_CACHE_DIR", t.TempDir())

	fetcher, err := NewFetcher()
	if err != nil {
		t.Fatalf("NewFetcher failed: %v", err)
	}

	manifest, err := fetcher.FetchManifest("ml1m")
	if err != nil {
		t.Fatalf("FetchManifest failed: %v", err)
	}
	if manifest.Name != "ml1m" || manifest.ItemPoolSize != 3706 {
		t.Fatalf("unexpected manifest: %+v", manifest)
	}

	split := manifest.Splits["dev"]
	path, err := fetcher.Download(split)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	// Cached copy must survive the server failing.
	serveSplit = false
	again, err := fetcher.Download(split)
	if err != nil {
		t.Fatalf("cached Download failed: %v", err)
	}
	if again != path {
		t.Fatalf("cache returned a different path: %s vs %s", again, path)
	}
}

func TestDownload_ChecksumMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("tampered")); err != nil {
			panic(err)
		}
	}))
	defer ts.Close()

	t.Setenv("DATASET_BASE_URL", ts.URL)
	t.Setenv("DATASET_CACHE_DIR", t.TempDir())

	fetcher, err := NewFetcher()
	if err != nil {
		t.Fatalf("NewFetcher failed: %v", err)
	}

	sum := sha256.Sum256([]byte("expected content"))
	split := SplitRef{
		Name:   "dev",
		URL:    "/files/dev.json",
		SHA256: hex.EncodeToString(sum[:]),
	}
	if _, err := fetcher.Download(split); err == nil {
		t.Fatal("expected checksum mismatch error")
	}
}
