package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"physiq/internal/imagestore"
	"physiq/internal/llm"
)

// fakeStore serves in-memory images.
type fakeStore struct {
	refs map[string][]byte
}

func (f *fakeStore) List(_ context.Context) ([]imagestore.Ref, error) {
	var refs []imagestore.Ref
	for key := range f.refs {
		refs = append(refs, imagestore.Ref{Key: key, URL: "fake://" + key})
	}
	// Map order is random; callers that care sort, like real stores do.
	for i := range refs {
		for j := i + 1; j < len(refs); j++ {
			if refs[j].Key < refs[i].Key {
				refs[i], refs[j] = refs[j], refs[i]
			}
		}
	}
	return refs, nil
}

func (f *fakeStore) Fetch(_ context.Context, ref imagestore.Ref) ([]byte, error) {
	return f.refs[ref.Key], nil
}

func (f *fakeStore) Source() string { return "fake" }

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testBatch(t *testing.T, store imagestore.Store, provider llm.Provider) *Batch {
	t.Helper()
	cfg := DefaultBatchConfig()
	cfg.Delay = 0
	cfg.Randomize = false
	return NewBatch(store, testGenerator(provider), cfg, nil)
}

func TestBatchRunCollectsQuestions(t *testing.T) {
	img := pngBytes(t)
	store := &fakeStore{refs: map[string][]byte{
		"a.png": img,
		"b.png": img,
	}}
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validQuestionJSON(2)},
		llm.MockResponse{Content: validQuestionJSON(3)},
	)

	result, err := testBatch(t, store, mock).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Questions) != 5 {
		t.Errorf("got %d questions, want 5", len(result.Questions))
	}
	if result.Stats.Successful != 2 || result.Stats.Failed != 0 {
		t.Errorf("stats = %d successful / %d failed, want 2/0",
			result.Stats.Successful, result.Stats.Failed)
	}
	if result.Stats.SuccessRate != 100 {
		t.Errorf("success rate = %v, want 100", result.Stats.SuccessRate)
	}
	if result.Stats.TotalQuestions != 5 {
		t.Errorf("total questions = %d, want 5", result.Stats.TotalQuestions)
	}
}

func TestBatchRunContinuesAfterImageFailure(t *testing.T) {
	store := &fakeStore{refs: map[string][]byte{
		"a.png": []byte("not an image"),
		"b.png": pngBytes(t),
	}}
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON(1)})

	result, err := testBatch(t, store, mock).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Stats.Failed != 1 || result.Stats.Successful != 1 {
		t.Errorf("stats = %d successful / %d failed, want 1/1",
			result.Stats.Successful, result.Stats.Failed)
	}
	outcome := result.Stats.ImageResults["a.png"]
	if outcome.Status != "failed" || outcome.Error == "" {
		t.Errorf("unexpected outcome for bad image: %+v", outcome)
	}
}

func TestBatchRunAllFailuresStillReturnsResult(t *testing.T) {
	store := &fakeStore{refs: map[string][]byte{"a.png": []byte("junk")}}
	mock := llm.NewMockProvider()

	result, err := testBatch(t, store, mock).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stats.Failed != 1 || len(result.Questions) != 0 {
		t.Errorf("stats = %+v, want one recorded failure", result.Stats)
	}
}

func TestBatchRunEmptyStoreFails(t *testing.T) {
	store := &fakeStore{refs: map[string][]byte{}}
	mock := llm.NewMockProvider()

	if _, err := testBatch(t, store, mock).Run(context.Background()); err == nil {
		t.Fatal("expected error for empty store")
	}
}

func TestBatchMaxImagesTruncates(t *testing.T) {
	img := pngBytes(t)
	store := &fakeStore{refs: map[string][]byte{
		"a.png": img, "b.png": img, "c.png": img,
	}}
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validQuestionJSON(1)},
		llm.MockResponse{Content: validQuestionJSON(1)},
	)

	cfg := DefaultBatchConfig()
	cfg.Delay = 0
	cfg.Randomize = false
	cfg.MaxImages = 2
	result, err := NewBatch(store, testGenerator(mock), cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stats.TotalImages != 2 {
		t.Errorf("processed %d images, want 2", result.Stats.TotalImages)
	}
	// Without randomization the cap keeps the first of the sorted list.
	if _, ok := result.Stats.ImageResults["a.png"]; !ok {
		t.Error("expected a.png in results")
	}
}

func TestWriteResults(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "questions.json")

	result := &BatchResult{
		Questions: []Question{{
			QuestionText: "What is shown?",
			ImagePath:    "fig.png",
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: 0,
			Difficulty:   Easy,
			Explanation:  "Trivial.",
			Topic:        "Physics",
			Subtopic:     "General",
		}},
		Stats: ProcessingStats{TotalImages: 1, Successful: 1},
	}

	statsFile, err := WriteResults(result, out, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statsFile != filepath.Join(dir, "questions_stats.json") {
		t.Errorf("stats file = %q", statsFile)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		t.Fatalf("question file is not valid JSON: %v", err)
	}
	if len(questions) != 1 || questions[0].QuestionText != "What is shown?" {
		t.Errorf("unexpected round trip: %+v", questions)
	}

	if _, err := os.Stat(statsFile); err != nil {
		t.Errorf("stats file missing: %v", err)
	}
}

func TestWriteResultsSkipsStats(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "q.json")

	statsFile, err := WriteResults(&BatchResult{}, out, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statsFile != "" {
		t.Errorf("stats file = %q, want empty", statsFile)
	}
	if _, err := os.Stat(filepath.Join(dir, "q_stats.json")); !os.IsNotExist(err) {
		t.Error("stats file written despite being disabled")
	}
}
