// Package runlog keeps the wall clock and run directory conventions shared
// by the evaluation commands
package runlog

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TimestampLayout is the wall clock format stamped on run records.
const TimestampLayout = "2006-01-02 15:04:05"

// HistoryFileName is the file a run's evaluation history is stored under.
const HistoryFileName = "history.json"

// FormatDuration renders elapsed seconds as "1d 2h 3m 4.56s". Days, hours
// and minutes are always present even when zero.
func FormatDuration(seconds float64) string {
	days := int(seconds / 86400)
	rem := math.Mod(seconds, 86400)
	hours := int(rem / 3600)
	rem = math.Mod(rem, 3600)
	minutes := int(rem / 60)
	secs := math.Mod(rem, 60)
	return fmt.Sprintf("%dd %dh %dm %.2fs", days, hours, minutes, secs)
}

// Timestamp returns the current wall clock time in the run record format.
func Timestamp() string {
	return time.Now().Format(TimestampLayout)
}

// NewRunID builds a sortable run identifier from the start time and a short
// random suffix.
func NewRunID() string {
	return fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), uuid.NewString()[:8])
}

// RunDir resolves the directory a run stores its artifacts under.
func RunDir(base, runID string) string {
	return filepath.Join(base, runID)
}

// HistoryPath resolves the file a run's evaluation history is stored at.
func HistoryPath(base, runID string) string {
	return filepath.Join(RunDir(base, runID), HistoryFileName)
}

// EnsureDir creates the parent directory of path if it does not exist yet.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if _, err := os.Stat(dir); err == nil {
		return nil
	}

	log.Info().Str("dir", dir).Msg("Creating directory")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}
