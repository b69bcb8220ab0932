package exam

import (
	"fmt"
	"math/rand/v2"

	"physiq/internal/quizgen"
)

// SelectPool draws an exam's questions from the bank: a random sample
// per difficulty matching the requested distribution, topped up from
// the rest of the bank when a difficulty runs short, then shuffled.
// The pool holds at most total questions and at least one, or selection
// fails.
func SelectPool(bank *Bank, total int, dist quizgen.Distribution, rng *rand.Rand) ([]quizgen.Question, error) {
	if total <= 0 {
		return nil, fmt.Errorf("exam needs at least one question")
	}
	if total > len(bank.Questions) {
		total = len(bank.Questions)
	}

	counts := quizgen.Allocate(total, dist)
	grouped := bank.ByDifficulty()

	var pool []quizgen.Question
	for d, want := range counts {
		candidates := grouped[d]
		idx := rng.Perm(len(candidates))
		for i := 0; i < want && i < len(candidates); i++ {
			pool = append(pool, candidates[idx[i]])
		}
	}

	// Top up from any difficulty when the bank mix falls short of the
	// requested one.
	if len(pool) < total {
		pool = topUp(pool, bank.Questions, total, rng)
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool, nil
}

func topUp(pool, all []quizgen.Question, total int, rng *rand.Rand) []quizgen.Question {
	used := make(map[string]int)
	for _, q := range pool {
		used[poolKey(q)]++
	}

	idx := rng.Perm(len(all))
	for _, i := range idx {
		if len(pool) >= total {
			break
		}
		q := all[i]
		if used[poolKey(q)] > 0 {
			used[poolKey(q)]--
			continue
		}
		pool = append(pool, q)
	}
	return pool
}

// poolKey identifies a question well enough to avoid duplicate picks.
func poolKey(q quizgen.Question) string {
	return q.ImageFilename + "|" + q.QuestionText
}
