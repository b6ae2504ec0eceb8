package scoreboard

import (
	"sort"
	"sync"

	"github.com/tensorplex-labs/rankbench/internal/trackapi"
)

// Store keeps run result records in memory, grouped by run id. Records of
// one run are kept in arrival order.
type Store struct {
	mu   sync.RWMutex
	runs map[string][]trackapi.RunResultRecord
}

func NewStore() *Store {
	return &Store{
		runs: make(map[string][]trackapi.RunResultRecord),
	}
}

// Append stores a record and returns the number of records its run now
// holds.
func (s *Store) Append(record trackapi.RunResultRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[record.RunID] = append(s.runs[record.RunID], record)
	return len(s.runs[record.RunID])
}

// Latest returns the most recently appended record of a run.
func (s *Store) Latest(runID string) (trackapi.RunResultRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.runs[runID]
	if len(records) == 0 {
		return trackapi.RunResultRecord{}, false
	}
	return records[len(records)-1], true
}

// History returns a copy of every record of a run in arrival order.
func (s *Store) History(runID string) []trackapi.RunResultRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.runs[runID]
	out := make([]trackapi.RunResultRecord, len(records))
	copy(out, records)
	return out
}

// Runs returns the known run ids sorted lexically.
func (s *Store) Runs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
