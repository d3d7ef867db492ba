package checker

import (
	"fmt"
	"testing"

	"github.com/standardbeagle/typofix/internal/suggest"
)

func benchPool(n int) []string {
	pool := make([]string, n)
	for i := range pool {
		pool[i] = fmt.Sprintf("memberName%d", i)
	}
	return pool
}

func BenchmarkRankKey(b *testing.B) {
	pool := benchPool(1000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rankKey(suggest.ModeStandard, "fetchUserz", pool)
	}
}

// BenchmarkRankMemoized compares a raw ranking pass against the cached path
// the checker actually takes. Hashing the pool is the whole cost of a hit.
func BenchmarkRankMemoized(b *testing.B) {
	pool := benchPool(1000)

	b.Run("Uncached", func(b *testing.B) {
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			suggest.Rank("fetchUserz", pool, 0)
		}
	})

	b.Run("Cached", func(b *testing.B) {
		c := &Checker{cache: newRankCache(rankCacheSize)}
		c.rank(suggest.ModeStandard, "fetchUserz", pool, 0)

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			c.rank(suggest.ModeStandard, "fetchUserz", pool, 0)
		}
	})
}
