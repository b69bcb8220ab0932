package quizgen

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestPromptBuilderDeterministic(t *testing.T) {
	b := NewPromptBuilder(false, nil, nil)

	spec := b.Build("pendulum.png")
	if spec.Total != defaultQuestionsPerImage {
		t.Errorf("total = %d, want %d", spec.Total, defaultQuestionsPerImage)
	}
	if spec.Counts[Easy] != 2 || spec.Counts[Medium] != 2 || spec.Counts[Hard] != 1 {
		t.Errorf("unexpected counts: %v", spec.Counts)
	}
	if !strings.Contains(spec.Text, `"pendulum.png"`) {
		t.Error("prompt does not embed the image filename")
	}
	if !strings.Contains(spec.Text, "exactly 5 multiple-choice questions") {
		t.Error("prompt does not state the question count")
	}

	// Same input, same prompt.
	if again := b.Build("pendulum.png"); again.Text != spec.Text {
		t.Error("deterministic builder produced different prompts")
	}
}

func TestPromptBuilderRandomizedBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	b := NewPromptBuilder(true, nil, rng)

	for range 50 {
		spec := b.Build("fig.png")
		if spec.Total < minQuestionsPerImage || spec.Total > maxQuestionsPerImage {
			t.Fatalf("total %d outside [%d, %d]",
				spec.Total, minQuestionsPerImage, maxQuestionsPerImage)
		}
		sum := 0
		for _, n := range spec.Counts {
			sum += n
		}
		if sum != spec.Total {
			t.Fatalf("counts sum to %d, total is %d", sum, spec.Total)
		}
	}
}

func TestPromptBuilderExplicitDistribution(t *testing.T) {
	dist := Distribution{Hard: 1.0}
	b := NewPromptBuilder(false, dist, nil)

	spec := b.Build("fig.png")
	if spec.Counts[Hard] != spec.Total {
		t.Errorf("counts = %v, want all Hard", spec.Counts)
	}
	if !strings.Contains(spec.Text, "'Hard'") {
		t.Error("prompt does not mention the Hard mix")
	}
}

func TestPromptMentionsRequiredKeys(t *testing.T) {
	spec := NewPromptBuilder(false, nil, nil).Build("fig.png")

	for _, key := range []string{
		"question_text", "image_path", "option_text",
		"correct_answer_index", "difficulty_level",
		"explanation", "topic", "subtopic",
	} {
		if !strings.Contains(spec.Text, key) {
			t.Errorf("prompt missing key %q", key)
		}
	}
}
