package exam

import (
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"physiq/internal/quizgen"
)

func question(text string, d quizgen.Difficulty, correct int) quizgen.Question {
	return quizgen.Question{
		QuestionText: text,
		ImagePath:    "fig.png",
		Options:      []string{"A", "B", "C", "D"},
		CorrectIndex: correct,
		Difficulty:   d,
		Explanation:  "Because.",
		Topic:        "Physics",
		Subtopic:     "General",
	}
}

func testBank(t *testing.T) *Bank {
	t.Helper()
	var questions []quizgen.Question
	for i := range 6 {
		questions = append(questions, question("easy", quizgen.Easy, i%4))
	}
	for i := range 4 {
		questions = append(questions, question("medium", quizgen.Medium, i%4))
	}
	for i := range 2 {
		questions = append(questions, question("hard", quizgen.Hard, i%4))
	}
	for i := range questions {
		questions[i].QuestionText = questions[i].QuestionText + string(rune('a'+i))
	}
	return &Bank{Path: "test.json", Questions: questions}
}

func TestLoadBank(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.json")

	questions := []quizgen.Question{question("q1", quizgen.Easy, 0)}
	data, _ := json.Marshal(questions)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	bank, err := LoadBank(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bank.Questions) != 1 {
		t.Errorf("got %d questions", len(bank.Questions))
	}
}

func TestLoadBankRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"empty.json":   `[]`,
		"notjson.json": `{`,
		"badopts.json": `[{"question_text":"q","option_text":["A","B"],"correct_answer_index":0,"difficulty_level":"Easy"}]`,
		"badidx.json":  `[{"question_text":"q","option_text":["A","B","C","D"],"correct_answer_index":7,"difficulty_level":"Easy"}]`,
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadBank(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	if _, err := LoadBank(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSelectPoolMatchesDistribution(t *testing.T) {
	bank := testBank(t)
	rng := rand.New(rand.NewPCG(1, 1))

	pool, err := SelectPool(bank, 10,
		quizgen.Distribution{quizgen.Easy: 0.5, quizgen.Medium: 0.3, quizgen.Hard: 0.2}, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(pool) != 10 {
		t.Fatalf("pool size = %d, want 10", len(pool))
	}

	counts := map[quizgen.Difficulty]int{}
	for _, q := range pool {
		counts[q.Difficulty]++
	}
	if counts[quizgen.Easy] != 5 || counts[quizgen.Medium] != 3 || counts[quizgen.Hard] != 2 {
		t.Errorf("pool mix = %v, want 5/3/2", counts)
	}
}

func TestSelectPoolTopsUpShortDifficulty(t *testing.T) {
	bank := testBank(t) // only 2 Hard questions
	rng := rand.New(rand.NewPCG(2, 2))

	pool, err := SelectPool(bank, 9, quizgen.Distribution{quizgen.Hard: 1.0}, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(pool) != 9 {
		t.Errorf("pool size = %d, want 9 after top-up", len(pool))
	}
}

func TestSelectPoolCapsAtBankSize(t *testing.T) {
	bank := testBank(t)
	rng := rand.New(rand.NewPCG(3, 3))

	pool, err := SelectPool(bank, 100, quizgen.Distribution{quizgen.Easy: 1.0}, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(pool) != len(bank.Questions) {
		t.Errorf("pool size = %d, want whole bank (%d)", len(pool), len(bank.Questions))
	}
}

func TestSelectPoolRejectsZeroTotal(t *testing.T) {
	if _, err := SelectPool(testBank(t), 0, quizgen.Distribution{quizgen.Easy: 1}, rand.New(rand.NewPCG(4, 4))); err == nil {
		t.Fatal("expected error")
	}
}

func TestSessionNavigation(t *testing.T) {
	s := NewSession(testBank(t).Questions[:3], 0)

	s.Prev() // at first question, no-op
	if s.CurrentIndex != 0 {
		t.Error("Prev moved past start")
	}
	s.Next()
	s.Next()
	s.Next() // at last question, no-op
	if s.CurrentIndex != 2 {
		t.Errorf("index = %d, want 2", s.CurrentIndex)
	}
	s.Jump(1)
	if s.CurrentIndex != 1 {
		t.Errorf("index = %d, want 1", s.CurrentIndex)
	}
	s.Jump(99) // out of range, no-op
	if s.CurrentIndex != 1 {
		t.Error("Jump accepted out-of-range index")
	}
}

func TestSessionAnswering(t *testing.T) {
	s := NewSession(testBank(t).Questions[:3], 0)

	s.Answer(2)
	if !s.Answered(0) || s.Answers[0] != 2 {
		t.Errorf("answers = %v", s.Answers)
	}
	s.Answer(1) // overwrite
	if s.Answers[0] != 1 {
		t.Errorf("answer not overwritten: %v", s.Answers)
	}
	s.Answer(9) // invalid option, ignored
	if s.Answers[0] != 1 {
		t.Error("invalid option accepted")
	}

	s.Submit()
	s.Next()
	s.Answer(3)
	if s.Answered(1) {
		t.Error("answer accepted after submit")
	}
}

func TestSessionTimer(t *testing.T) {
	s := NewSession(testBank(t).Questions[:1], 10*time.Minute)
	base := s.StartTime
	s.now = func() time.Time { return base.Add(4 * time.Minute) }

	if got := s.Elapsed(); got != 4*time.Minute {
		t.Errorf("elapsed = %v", got)
	}
	if got := s.Remaining(); got != 6*time.Minute {
		t.Errorf("remaining = %v", got)
	}
	if s.Expired() {
		t.Error("not expired yet")
	}

	s.now = func() time.Time { return base.Add(11 * time.Minute) }
	if !s.Expired() {
		t.Error("should be expired")
	}
	if got := s.Remaining(); got != 0 {
		t.Errorf("remaining = %v, want 0", got)
	}

	s.Submit()
	s.now = func() time.Time { return base.Add(20 * time.Minute) }
	if got := s.Elapsed(); got != 11*time.Minute {
		t.Errorf("elapsed after submit = %v, want frozen at 11m", got)
	}
}

func TestScore(t *testing.T) {
	questions := []quizgen.Question{
		question("q1", quizgen.Easy, 0),
		question("q2", quizgen.Easy, 1),
		question("q3", quizgen.Medium, 2),
		question("q4", quizgen.Hard, 3),
	}
	s := NewSession(questions, 0)
	s.Answers = map[int]int{
		0: 0, // correct
		1: 3, // wrong
		2: 2, // correct
		// 3 skipped
	}
	s.Submit()

	r := Score(s)
	if r.Correct != 2 || r.Incorrect != 1 || r.Skipped != 1 {
		t.Errorf("correct/incorrect/skipped = %d/%d/%d, want 2/1/1",
			r.Correct, r.Incorrect, r.Skipped)
	}
	if r.Percentage != 50 {
		t.Errorf("percentage = %v, want 50", r.Percentage)
	}
	if r.ByDifficulty[quizgen.Easy] != (DifficultyScore{Correct: 1, Total: 2}) {
		t.Errorf("easy = %+v", r.ByDifficulty[quizgen.Easy])
	}
	if r.ByDifficulty[quizgen.Hard] != (DifficultyScore{Correct: 0, Total: 1}) {
		t.Errorf("hard = %+v", r.ByDifficulty[quizgen.Hard])
	}
}

func TestToAttempt(t *testing.T) {
	questions := []quizgen.Question{question("q1", quizgen.Easy, 0)}
	s := NewSession(questions, 5*time.Minute)
	s.Answer(0)
	s.Submit()

	a := ToAttempt(s, Score(s), "bank.json")
	if a.ID != s.ID || a.QuestionFile != "bank.json" {
		t.Errorf("attempt = %+v", a)
	}
	if a.Correct != 1 || a.ScorePercent != 100 {
		t.Errorf("score = %d/%v", a.Correct, a.ScorePercent)
	}
	if a.TimeLimitSeconds != 300 {
		t.Errorf("time limit = %d, want 300", a.TimeLimitSeconds)
	}
	if a.ByDifficulty["Easy"] != [2]int{1, 1} {
		t.Errorf("by difficulty = %v", a.ByDifficulty)
	}
}
