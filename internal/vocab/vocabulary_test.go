package vocab

import (
	"reflect"
	"testing"
)

func TestVocabularyAddAndCount(t *testing.T) {
	v := New()

	v.Add("fetchUser")
	v.Add("fetchUser")
	v.Add("parseItem")
	v.Add("") // ignored

	if v.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", v.Len())
	}

	if v.Count("fetchUser") != 2 {
		t.Errorf("Count(fetchUser) = %d, expected 2", v.Count("fetchUser"))
	}

	if v.Count("missing") != 0 {
		t.Errorf("Count(missing) = %d, expected 0", v.Count("missing"))
	}
}

func TestVocabularyContains(t *testing.T) {
	v := New()
	v.AddAll([]string{"alpha", "beta", ""})

	if !v.Contains("alpha") {
		t.Error("Contains(alpha) should be true")
	}
	if v.Contains("gamma") {
		t.Error("Contains(gamma) should be false")
	}
	if v.Contains("") {
		t.Error("Empty names are never recorded")
	}
}

func TestVocabularyNamesSorted(t *testing.T) {
	v := New()
	v.AddAll([]string{"zebra", "apple", "mango"})

	names := v.Names()
	expected := []string{"apple", "mango", "zebra"}

	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Names() = %v, expected %v", names, expected)
	}
}

func TestClusters(t *testing.T) {
	v := New()
	v.AddAll([]string{
		"fetchUser", "fetchUsers",
		"running", "runs",
		"standalone",
	})

	clusters := v.Clusters(DefaultStemmer())

	if len(clusters) != 2 {
		t.Fatalf("Expected 2 clusters, got %d: %v", len(clusters), clusters)
	}

	// Find the cluster holding fetchUser and check its members
	var found bool
	for _, cluster := range clusters {
		for _, name := range cluster.Names {
			if name == "fetchUser" {
				found = true
				if !reflect.DeepEqual(cluster.Names, []string{"fetchUser", "fetchUsers"}) {
					t.Errorf("fetchUser cluster = %v, expected both variants", cluster.Names)
				}
			}
		}
	}
	if !found {
		t.Error("No cluster contains fetchUser")
	}

	// Single-token variants share the stem as the key
	for _, cluster := range clusters {
		if cluster.Names[0] == "running" || cluster.Names[0] == "runs" {
			if cluster.Key != "run" {
				t.Errorf("run cluster key = %q, expected %q", cluster.Key, "run")
			}
		}
	}
}

func TestClustersSingletonsExcluded(t *testing.T) {
	v := New()
	v.AddAll([]string{"alpha", "beta", "gamma"})

	clusters := v.Clusters(DefaultStemmer())
	if len(clusters) != 0 {
		t.Errorf("Expected no clusters for unrelated names, got %v", clusters)
	}
}

func TestClustersBoundedPerCluster(t *testing.T) {
	v := New()
	// Twelve spellings that all stem to "fetch user".
	v.AddAll([]string{
		"fetchUser", "fetchUsers", "FetchUser", "FetchUsers",
		"fetch_user", "fetch_users", "Fetch_User", "Fetch_Users",
		"FETCH_USER", "FETCH_USERS", "fetched_user", "fetched_users",
	})

	clusters := v.Clusters(DefaultStemmer())
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d: %v", len(clusters), clusters)
	}

	cluster := clusters[0]
	if cluster.Total != 12 {
		t.Errorf("Total = %d, expected 12", cluster.Total)
	}
	if len(cluster.Names) != maxClusterNames {
		t.Errorf("len(Names) = %d, expected the cap of %d", len(cluster.Names), maxClusterNames)
	}
}

func TestNearDuplicates(t *testing.T) {
	v := New()
	v.AddAll([]string{
		"receive", "recieve", // classic misspelling, flagged
		"fetchUser", "fetchUsers", // plural variants, suppressed by stem cluster
		"total", // unrelated
	})

	dups := v.NearDuplicates(DefaultStemmer())

	if len(dups) != 1 {
		t.Fatalf("Expected 1 near-duplicate pair, got %d: %v", len(dups), dups)
	}

	// Pairs are reported in alphabetical order
	if dups[0].A != "receive" || dups[0].B != "recieve" {
		t.Errorf("Pair = (%q, %q), expected (receive, recieve)", dups[0].A, dups[0].B)
	}

	if float64(dups[0].Score) < DefaultNearThreshold {
		t.Errorf("Score = %v, expected >= %v", dups[0].Score, DefaultNearThreshold)
	}
}

func TestNearDuplicatesOneEditApart(t *testing.T) {
	v := New()
	v.AddAll([]string{"handleRequest", "handleRequets"})

	dups := v.NearDuplicates(DefaultStemmer())

	if len(dups) != 1 {
		t.Fatalf("Expected 1 near-duplicate pair, got %d: %v", len(dups), dups)
	}
	if dups[0].Distance > 2 {
		t.Errorf("Distance = %d, expected a small edit distance", dups[0].Distance)
	}
}

func TestNearDuplicatesCaseOnlySkipped(t *testing.T) {
	v := New()
	v.AddAll([]string{"fetchUser", "FetchUser"})

	dups := v.NearDuplicates(DefaultStemmer())
	if len(dups) != 0 {
		t.Errorf("Case-only variants should not be flagged, got %v", dups)
	}
}

func TestNearDuplicatesShortNamesSkipped(t *testing.T) {
	v := New()
	v.AddAll([]string{"id", "idx", "ids"})

	dups := v.NearDuplicates(DefaultStemmer())
	if len(dups) != 0 {
		t.Errorf("Names shorter than %d runes should not be flagged, got %v", DefaultNearMinLength, dups)
	}
}

func TestNearDuplicatesAboveCustomThreshold(t *testing.T) {
	v := New()
	v.AddAll([]string{"handleRequest", "handleRequets"})

	// The trailing transposition is two edits, so only the similarity arm
	// can admit it; a near-impossible threshold shuts that arm off.
	strict := v.NearDuplicatesAbove(DefaultStemmer(), 0.999, DefaultNearMinLength)
	if len(strict) != 0 {
		t.Errorf("Expected transposition pair to be excluded at 0.999, got %v", strict)
	}

	// A permissive threshold admits weaker pairs.
	v.Add("handleResponse")
	loose := v.NearDuplicatesAbove(DefaultStemmer(), 0.80, DefaultNearMinLength)
	if len(loose) == 0 {
		t.Error("Expected pairs at threshold 0.80, got none")
	}
}

func TestNearDuplicatesAboveMinLength(t *testing.T) {
	v := New()
	v.AddAll([]string{"idx", "ids"})

	if dups := v.NearDuplicatesAbove(DefaultStemmer(), DefaultNearThreshold, 3); len(dups) != 1 {
		t.Errorf("Expected idx/ids pair at min length 3, got %v", dups)
	}
	if dups := v.NearDuplicatesAbove(DefaultStemmer(), DefaultNearThreshold, 4); len(dups) != 0 {
		t.Errorf("Expected no pairs at min length 4, got %v", dups)
	}
}

func TestNearDuplicatesDeterministic(t *testing.T) {
	v := New()
	v.AddAll([]string{"receive", "recieve", "handleRequest", "handleRequets"})

	st := DefaultStemmer()
	first := v.NearDuplicates(st)
	second := v.NearDuplicates(st)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("NearDuplicates not deterministic:\n%v\n%v", first, second)
	}
}

func TestAnalyze(t *testing.T) {
	v := New()
	v.AddAll([]string{"receive", "recieve", "fetchUser", "fetchUsers"})

	summary := v.Analyze(DefaultStemmer(), DefaultNearThreshold, DefaultNearMinLength)

	if summary.TotalNames != 4 {
		t.Errorf("TotalNames = %d, expected 4", summary.TotalNames)
	}
	if len(summary.Clusters) != 1 {
		t.Errorf("Expected 1 cluster, got %v", summary.Clusters)
	}
	if len(summary.NearDuplicates) != 1 {
		t.Errorf("Expected 1 near-duplicate, got %v", summary.NearDuplicates)
	}
}

func BenchmarkNearDuplicates(b *testing.B) {
	v := New()
	v.AddAll([]string{
		"fetchUser", "fetchUsers", "fetchUserData", "parseItem", "parseItems",
		"handleRequest", "handleResponse", "receive", "recieve", "transform",
		"transformData", "validate", "validator", "validation", "serialize",
	})
	st := DefaultStemmer()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = v.NearDuplicates(st)
	}
}
