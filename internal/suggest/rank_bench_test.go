package suggest

import (
	"fmt"
	"testing"
)

// benchmarkPool builds a member pool shaped like a mid-sized workspace:
// verb+noun camelCase names, numbered once the combinations run out.
func benchmarkPool(n int) []string {
	verbs := []string{"get", "set", "fetch", "load", "save", "update", "delete", "render", "parse", "format"}
	nouns := []string{"User", "Record", "Config", "Index", "Token", "Session", "Message", "File", "Path", "Cache"}

	pool := make([]string, 0, n)
	for i := 0; len(pool) < n; i++ {
		name := verbs[i%len(verbs)] + nouns[(i/len(verbs))%len(nouns)]
		if i >= len(verbs)*len(nouns) {
			name = fmt.Sprintf("%s%d", name, i)
		}
		pool = append(pool, name)
	}
	return pool
}

func BenchmarkJaroWinklerPairs(b *testing.B) {
	pairs := [][2]string{
		{"fetchUserRecrod", "fetchUserRecord"},
		{"readFil", "readFile"},
		{"intialize", "initialize"},
		{"short", "shrot"},
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p := pairs[i%len(pairs)]
		JaroWinkler(p[0], p[1])
	}
}

func BenchmarkTokenize(b *testing.B) {
	names := []string{
		"fetchUserRecord",
		"HTTP2ServerConfig",
		"snake_case_helper_name",
		"x",
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Tokenize(names[i%len(names)])
	}
}

func BenchmarkCompositeScoreSingle(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		CompositeScore("fetchUserRecrod", "fetchUserRecord")
	}
}

// BenchmarkRankPool measures a full ranking pass over pools of increasing
// size. Per-candidate allocations dominate here; the checker's rank cache
// exists because these numbers scale linearly with the pool.
func BenchmarkRankPool(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		pool := benchmarkPool(size)
		b.Run(fmt.Sprintf("pool%d", size), func(b *testing.B) {
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Rank("fetchUserz", pool, 0)
			}
		})
	}
}
