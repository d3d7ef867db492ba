// Package vocab builds identifier vocabularies from scanned sources and
// analyzes them for morphological clusters and near-duplicate names. The
// checker uses vocabularies as candidate pools; the vocab command reports
// clusters and likely in-codebase typos directly.
package vocab

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/typofix/internal/suggest"
)

// Near-duplicate detection defaults. A pair of names is reported when it
// is within one edit or its Jaro-Winkler similarity clears the threshold,
// unless both names stem to the same token signature (deliberate variants
// like fetchUser/fetchUsers). Both knobs are config-tunable.
const (
	DefaultNearThreshold = 0.93
	DefaultNearMinLength = 4

	nearDuplicateMaxEdit = 1
)

// Vocabulary is a thread-safe set of identifier names with occurrence counts.
type Vocabulary struct {
	mu    sync.RWMutex
	names map[string]int
}

// New creates an empty vocabulary.
func New() *Vocabulary {
	return &Vocabulary{names: make(map[string]int)}
}

// Add records one occurrence of a name. Empty names are ignored.
func (v *Vocabulary) Add(name string) {
	if name == "" {
		return
	}
	v.mu.Lock()
	v.names[name]++
	v.mu.Unlock()
}

// AddAll records one occurrence of each name.
func (v *Vocabulary) AddAll(names []string) {
	v.mu.Lock()
	for _, name := range names {
		if name != "" {
			v.names[name]++
		}
	}
	v.mu.Unlock()
}

// Contains reports whether a name has been recorded.
func (v *Vocabulary) Contains(name string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.names[name]
	return ok
}

// Count returns how many times a name was recorded.
func (v *Vocabulary) Count(name string) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.names[name]
}

// Names returns all distinct names in sorted order.
func (v *Vocabulary) Names() []string {
	v.mu.RLock()
	names := make([]string, 0, len(v.names))
	for name := range v.names {
		names = append(names, name)
	}
	v.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of distinct names.
func (v *Vocabulary) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.names)
}

// maxClusterNames caps the members reported per cluster. Generated code can
// stem hundreds of names to one signature; Total still counts them all.
const maxClusterNames = 10

// Cluster groups names whose tokens share the same stems. Names in one
// cluster are morphological variants of the same concept rather than typos.
type Cluster struct {
	Key   string   `json:"key"`
	Names []string `json:"names"`
	Total int      `json:"total"`
}

// clusterKey canonicalizes a name: split into tokens, stem each, rejoin.
func clusterKey(st *Stemmer, name string) string {
	tokens := suggest.Tokenize(name)
	if len(tokens) == 0 {
		return strings.ToLower(name)
	}
	return strings.Join(st.StemAll(tokens), " ")
}

// Clusters groups every name by its stemmed token signature and returns the
// groups holding two or more names, sorted by key. Members are sorted and
// capped at maxClusterNames per cluster; Total carries the full count.
func (v *Vocabulary) Clusters(st *Stemmer) []Cluster {
	byKey := make(map[string][]string)
	for _, name := range v.Names() {
		key := clusterKey(st, name)
		byKey[key] = append(byKey[key], name)
	}

	var clusters []Cluster
	for key, names := range byKey {
		if len(names) < 2 {
			continue
		}
		sort.Strings(names)
		total := len(names)
		if total > maxClusterNames {
			names = names[:maxClusterNames]
		}
		clusters = append(clusters, Cluster{Key: key, Names: names, Total: total})
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Key < clusters[j].Key
	})
	return clusters
}

// NearDuplicate is a pair of distinct names likely to be alternate spellings
// of the same intended identifier.
type NearDuplicate struct {
	A        string        `json:"a"`
	B        string        `json:"b"`
	Score    suggest.Score `json:"score"`
	Distance int           `json:"distance"`
}

// NearDuplicates returns name pairs close enough to be typos of each other,
// using the default thresholds.
func (v *Vocabulary) NearDuplicates(st *Stemmer) []NearDuplicate {
	return v.NearDuplicatesAbove(st, DefaultNearThreshold, DefaultNearMinLength)
}

// NearDuplicatesAbove returns name pairs whose similarity clears the given
// threshold (or that are within one edit). Names shorter than minLength
// runes are skipped, as are pairs that differ only in case or whose stemmed
// token signatures match. Results are sorted by score descending, then by
// name, so output is stable across runs.
func (v *Vocabulary) NearDuplicatesAbove(st *Stemmer, threshold float64, minLength int) []NearDuplicate {
	if threshold <= 0 {
		threshold = DefaultNearThreshold
	}
	if minLength <= 0 {
		minLength = DefaultNearMinLength
	}
	names := v.Names()

	var dups []NearDuplicate
	for i := 0; i < len(names); i++ {
		if utf8.RuneCountInString(names[i]) < minLength {
			continue
		}
		for j := i + 1; j < len(names); j++ {
			a, b := names[i], names[j]
			if utf8.RuneCountInString(b) < minLength {
				continue
			}
			if strings.EqualFold(a, b) {
				continue
			}
			if clusterKey(st, a) == clusterKey(st, b) {
				continue
			}

			distance := edlib.LevenshteinDistance(a, b)
			similarity, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
			if err != nil {
				continue
			}
			if distance > nearDuplicateMaxEdit && float64(similarity) < threshold {
				continue
			}

			dups = append(dups, NearDuplicate{
				A:        a,
				B:        b,
				Score:    suggest.NewScore(float64(similarity)),
				Distance: distance,
			})
		}
	}

	sort.Slice(dups, func(i, j int) bool {
		if dups[i].Score != dups[j].Score {
			return dups[i].Score > dups[j].Score
		}
		if dups[i].A != dups[j].A {
			return dups[i].A < dups[j].A
		}
		return dups[i].B < dups[j].B
	})
	return dups
}

// Summary captures the analysis of one vocabulary for reporting.
type Summary struct {
	TotalNames     int             `json:"total_names"`
	Clusters       []Cluster       `json:"clusters,omitempty"`
	NearDuplicates []NearDuplicate `json:"near_duplicates,omitempty"`
}

// Analyze runs clustering and near-duplicate detection in one pass.
func (v *Vocabulary) Analyze(st *Stemmer, nearThreshold float64, minLength int) *Summary {
	return &Summary{
		TotalNames:     v.Len(),
		Clusters:       v.Clusters(st),
		NearDuplicates: v.NearDuplicatesAbove(st, nearThreshold, minLength),
	}
}
