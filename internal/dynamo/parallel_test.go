package dynamo

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRange(t *testing.T) {
	for _, tc := range []struct{ n, minChunk int }{
		{0, 1}, {1, 1}, {7, 1}, {100, 3}, {100, 1000}, {5, 0},
	} {
		hits := make([]int32, tc.n)
		var calls int32
		ParallelFor(tc.n, tc.minChunk, func(start, end int) {
			atomic.AddInt32(&calls, 1)
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})

		for i, h := range hits {
			if h != 1 {
				t.Errorf("n=%d minChunk=%d: index %d visited %d times", tc.n, tc.minChunk, i, h)
			}
		}
		if tc.n == 0 && calls != 0 {
			t.Errorf("expected no calls for empty range, got %d", calls)
		}
	}
}
