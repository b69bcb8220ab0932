package quizgen

import (
	"math/rand/v2"
	"testing"
)

func TestAllocateDefaultDistribution(t *testing.T) {
	counts := Allocate(10, Distribution{Easy: 0.5, Medium: 0.3, Hard: 0.2})

	want := map[Difficulty]int{Easy: 5, Medium: 3, Hard: 2}
	for d, n := range want {
		if counts[d] != n {
			t.Errorf("Allocate(10)[%s] = %d, want %d", d, counts[d], n)
		}
	}
}

func TestAllocateSumsToTotal(t *testing.T) {
	dists := []Distribution{
		{Easy: 0.5, Medium: 0.3, Hard: 0.2},
		{Easy: 0.33, Medium: 0.33, Hard: 0.34},
		{Easy: 0.9, Medium: 0.05, Hard: 0.05},
		{Easy: 1.0},
		{Medium: 0.7, Hard: 0.3},
	}

	for _, dist := range dists {
		for total := 1; total <= 50; total++ {
			counts := Allocate(total, dist)
			sum := 0
			for _, c := range counts {
				sum += c
			}
			if sum != total {
				t.Errorf("Allocate(%d, %v) sums to %d", total, dist, sum)
			}
		}
	}
}

func TestAllocateFloorWhenTotalAllows(t *testing.T) {
	dist := Distribution{Easy: 0.9, Medium: 0.05, Hard: 0.05}
	counts := Allocate(3, dist)

	for _, d := range Difficulties {
		if counts[d] < 1 {
			t.Errorf("Allocate(3)[%s] = %d, want >= 1", d, counts[d])
		}
	}
}

func TestAllocateSmallTotal(t *testing.T) {
	// Fewer questions than difficulties: sum still matches exactly.
	counts := Allocate(2, Distribution{Easy: 0.5, Medium: 0.3, Hard: 0.2})
	sum := 0
	for _, c := range counts {
		sum += c
	}
	if sum != 2 {
		t.Errorf("Allocate(2) sums to %d, want 2", sum)
	}
}

func TestAllocateZeroRatioGetsNothing(t *testing.T) {
	counts := Allocate(10, Distribution{Easy: 0.6, Medium: 0.4})
	if counts[Hard] != 0 {
		t.Errorf("Hard got %d questions from a zero ratio", counts[Hard])
	}
}

func TestAssignDifficultiesMatchesCounts(t *testing.T) {
	dist := Distribution{Easy: 0.5, Medium: 0.3, Hard: 0.2}
	rng := rand.New(rand.NewPCG(42, 42))

	labels := AssignDifficulties(10, dist, rng, true)
	if len(labels) != 10 {
		t.Fatalf("got %d labels, want 10", len(labels))
	}

	got := map[Difficulty]int{}
	for _, d := range labels {
		got[d]++
	}
	want := Allocate(10, dist)
	for d, n := range want {
		if got[d] != n {
			t.Errorf("assigned %d %s labels, want %d", got[d], d, n)
		}
	}
}

func TestParseDistribution(t *testing.T) {
	dist, err := ParseDistribution("Easy=0.5,Medium=0.3,Hard=0.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dist[Easy] != 0.5 || dist[Medium] != 0.3 || dist[Hard] != 0.2 {
		t.Errorf("unexpected distribution: %v", dist)
	}
}

func TestParseDistributionNormalizesPercentages(t *testing.T) {
	dist, err := ParseDistribution("Easy=50, Medium=30, Hard=20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dist[Easy] != 0.5 || dist[Medium] != 0.3 || dist[Hard] != 0.2 {
		t.Errorf("unexpected distribution: %v", dist)
	}
}

func TestParseDistributionErrors(t *testing.T) {
	cases := []string{
		"",
		"Easy",
		"Trivial=0.5",
		"Easy=nope",
		"Easy=-1",
		"Easy=0,Medium=0",
	}
	for _, s := range cases {
		if _, err := ParseDistribution(s); err == nil {
			t.Errorf("ParseDistribution(%q) succeeded, want error", s)
		}
	}
}
