package evaluation

import (
	"fmt"
	"sort"
	"strings"
)

// FormatResult renders a result as "HIT@5:0.3300,NDCG@5:0.2211,...", with
// cutoffs ascending and metric names alphabetical within each cutoff. Keys
// that do not follow the METRIC@K form are left out.
func FormatResult(result Result) string {
	var names []string
	var topKs []int
	seenName := map[string]bool{}
	seenK := map[int]bool{}
	for key := range result {
		name, k, ok := SplitKey(key)
		if !ok {
			continue
		}
		if !seenName[name] {
			seenName[name] = true
			names = append(names, name)
		}
		if !seenK[k] {
			seenK[k] = true
			topKs = append(topKs, k)
		}
	}
	sort.Strings(names)
	sort.Ints(topKs)

	parts := make([]string, 0, len(result))
	for _, k := range topKs {
		for _, name := range names {
			key := fmt.Sprintf("%s@%d", name, k)
			if value, ok := result[key]; ok {
				parts = append(parts, fmt.Sprintf("%s:%.4f", key, value))
			}
		}
	}
	return strings.Join(parts, ",")
}
