package scoring

import (
	"math"
	"sort"
)

// apportion converts counts into integer percentages using the largest
// remainder method. A non-zero total always yields percentages summing to
// exactly 100; a zero total yields all zeros. Equal remainders are resolved
// by index so the result is deterministic.
func apportion(counts []int) []int {
	out := make([]int, len(counts))
	total := 0
	for _, c := range counts {
		if c > 0 {
			total += c
		}
	}
	if total == 0 {
		return out
	}

	type share struct {
		idx int
		rem int
	}
	shares := make([]share, 0, len(counts))
	assigned := 0
	for i, c := range counts {
		if c <= 0 {
			continue
		}
		scaled := c * 100
		out[i] = scaled / total
		assigned += out[i]
		shares = append(shares, share{idx: i, rem: scaled % total})
	}

	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].rem > shares[b].rem
	})
	for i := 0; assigned < 100; i++ {
		out[shares[i%len(shares)].idx]++
		assigned++
	}
	return out
}

// percentOf returns round(part/whole*100) clamped to [0,100]. A non-positive
// whole yields 0.
func percentOf(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return clamp(int(math.Round(float64(part)*100/float64(whole))), 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
