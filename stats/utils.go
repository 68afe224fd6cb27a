package stats

import (
	"math"
	"sort"
)

func Int64Max(a, b int64) int64 {
	return int64(math.Max(float64(a), float64(b)))
}

func Int64Min(a, b int64) int64 {
	return int64(math.Min(float64(a), float64(b)))
}

// SearchInt64s returns the left-biased insertion index of v in the
// ascending slice a: the smallest i with a[i] >= v, or len(a).
func SearchInt64s(a []int64, v int64) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= v })
}
