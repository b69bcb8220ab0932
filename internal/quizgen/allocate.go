package quizgen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
)

// PresetDistributions is the catalog of global difficulty mixes a
// randomized batch picks from. The first entry is the deterministic
// default.
var PresetDistributions = []Distribution{
	{Easy: 0.5, Medium: 0.3, Hard: 0.2},
	{Easy: 0.4, Medium: 0.4, Hard: 0.2},
	{Easy: 0.3, Medium: 0.4, Hard: 0.3},
	{Easy: 0.6, Medium: 0.25, Hard: 0.15},
	{Easy: 0.35, Medium: 0.35, Hard: 0.3},
}

// Allocate turns a ratio distribution into integer counts that sum to
// exactly total. Every difficulty with a positive ratio gets at least
// one question when total allows it; rounding drift is corrected on
// the largest-ratio difficulty first. Pure arithmetic: never fails for
// any positive total and non-empty distribution.
func Allocate(total int, dist Distribution) map[Difficulty]int {
	counts := make(map[Difficulty]int, len(dist))

	// Largest ratio first; canonical label order breaks ties so the
	// result is deterministic.
	order := difficultiesByRatio(dist)

	for _, d := range order {
		counts[d] = max(1, int(math.Round(float64(total)*dist[d])))
	}

	sum := 0
	for _, c := range counts {
		sum += c
	}

	// Excess comes off the largest ratios, but no difficulty drops
	// below 1 unless total is smaller than the number of difficulties,
	// in which case the smallest ratios are zeroed first.
	for floor := 1; sum > total; {
		removed := false
		take := order
		if floor == 0 {
			take = reversed(order)
		}
		for _, d := range take {
			if sum == total {
				break
			}
			if counts[d] > floor {
				counts[d]--
				sum--
				removed = true
			}
		}
		if !removed {
			if floor == 0 {
				break
			}
			floor = 0
		}
	}

	// Deficit goes to the most common difficulty.
	for sum < total {
		counts[order[0]]++
		sum++
	}

	return counts
}

// AssignDifficulties produces one difficulty label per item, matching
// the Allocate counts. With shuffling enabled the labels are permuted
// using rng; otherwise they come out grouped in ratio order.
func AssignDifficulties(total int, dist Distribution, rng *rand.Rand, shuffle bool) []Difficulty {
	counts := Allocate(total, dist)

	labels := make([]Difficulty, 0, total)
	for _, d := range difficultiesByRatio(dist) {
		for range counts[d] {
			labels = append(labels, d)
		}
	}

	if shuffle && rng != nil {
		rng.Shuffle(len(labels), func(i, j int) {
			labels[i], labels[j] = labels[j], labels[i]
		})
	}

	return labels
}

// difficultiesByRatio returns the distribution's difficulties with a
// positive ratio, largest ratio first, ties in canonical label order.
func difficultiesByRatio(dist Distribution) []Difficulty {
	var order []Difficulty
	for _, d := range Difficulties {
		if dist[d] > 0 {
			order = append(order, d)
		}
	}
	// Include any label outside the canonical three, for safety.
	for d, r := range dist {
		if r > 0 && !contains(order, d) {
			order = append(order, d)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return dist[order[i]] > dist[order[j]]
	})
	return order
}

func reversed(ds []Difficulty) []Difficulty {
	out := make([]Difficulty, len(ds))
	for i, d := range ds {
		out[len(ds)-1-i] = d
	}
	return out
}

func contains(ds []Difficulty, d Difficulty) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}

// ParseDistribution parses a CLI distribution spec such as
// "Easy=0.5,Medium=0.3,Hard=0.2". Percentages above 1 are accepted and
// normalized, so "Easy=50,Medium=30,Hard=20" means the same thing.
func ParseDistribution(s string) (Distribution, error) {
	dist := make(Distribution)
	var sum float64

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid distribution entry %q: want Difficulty=ratio", part)
		}
		d, err := ParseDifficulty(strings.TrimSpace(k))
		if err != nil {
			return nil, err
		}
		ratio, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || ratio < 0 {
			return nil, fmt.Errorf("invalid ratio for %s: %q", d, v)
		}
		dist[d] = ratio
		sum += ratio
	}

	if len(dist) == 0 {
		return nil, fmt.Errorf("empty distribution")
	}
	if sum <= 0 {
		return nil, fmt.Errorf("distribution ratios must sum to a positive value")
	}

	// Normalize so percentages and ratios are interchangeable.
	for d := range dist {
		dist[d] /= sum
	}
	return dist, nil
}
