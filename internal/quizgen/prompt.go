package quizgen

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Catalogs the randomized prompt builder draws from. A different
// combination per image keeps the generated questions from converging
// on one voice.
var (
	subjectContexts = []string{
		"physics teacher's perspective",
		"engineering student's perspective",
		"physicist's analytical viewpoint",
		"academic researcher's perspective",
		"practical application standpoint",
	}

	questionStyles = []string{
		"conceptual understanding",
		"mathematical calculation",
		"practical application",
		"theoretical analysis",
		"comparative analysis",
	}

	analysisApproaches = []string{
		"carefully analyze the provided image",
		"examine the scientific content shown in the image",
		"study the educational material presented in the image",
		"investigate the principles illustrated in the image",
	}
)

const (
	minQuestionsPerImage = 3
	maxQuestionsPerImage = 7

	defaultQuestionsPerImage = 5
)

// defaultCounts is the fixed per-image mix used when randomization is
// disabled.
var defaultCounts = map[Difficulty]int{Easy: 2, Medium: 2, Hard: 1}

// PromptSpec is a fully resolved per-image prompt: the text sent to the
// model plus the difficulty counts it was asked for.
type PromptSpec struct {
	Text   string
	Counts map[Difficulty]int
	Total  int
}

// PromptBuilder produces per-image prompts. With Randomize set, each
// call draws a question count, difficulty mix, and phrasing from the
// catalogs; otherwise every image gets the same deterministic prompt.
type PromptBuilder struct {
	Randomize bool

	// Distribution, when non-nil, overrides the preset difficulty
	// mixes for every image.
	Distribution Distribution

	rng *rand.Rand
}

// NewPromptBuilder seeds the builder's randomness. A nil rng falls back
// to the process-global source.
func NewPromptBuilder(randomize bool, dist Distribution, rng *rand.Rand) *PromptBuilder {
	return &PromptBuilder{Randomize: randomize, Distribution: dist, rng: rng}
}

// Build resolves the prompt for one image. imageFilename is embedded in
// the instructions so the model echoes it back in image_path.
func (b *PromptBuilder) Build(imageFilename string) PromptSpec {
	var (
		total    int
		counts   map[Difficulty]int
		context  string
		style    string
		approach string
	)

	if b.Randomize {
		total = minQuestionsPerImage + b.intN(maxQuestionsPerImage-minQuestionsPerImage+1)
		dist := b.Distribution
		if dist == nil {
			dist = PresetDistributions[b.intN(len(PresetDistributions))]
		}
		counts = Allocate(total, dist)
		context = subjectContexts[b.intN(len(subjectContexts))]
		style = questionStyles[b.intN(len(questionStyles))]
		approach = analysisApproaches[b.intN(len(analysisApproaches))]
	} else {
		total = defaultQuestionsPerImage
		if b.Distribution != nil {
			counts = Allocate(total, b.Distribution)
		} else {
			counts = defaultCounts
		}
		context = subjectContexts[0]
		style = questionStyles[0]
		approach = "analyze the provided image"
	}

	return PromptSpec{
		Text:   renderPrompt(context, approach, style, total, counts, imageFilename),
		Counts: counts,
		Total:  total,
	}
}

func (b *PromptBuilder) intN(n int) int {
	if b.rng != nil {
		return b.rng.IntN(n)
	}
	return rand.IntN(n)
}

func renderPrompt(context, approach, style string, total int, counts map[Difficulty]int, imageFilename string) string {
	var mix []string
	for _, d := range Difficulties {
		if counts[d] > 0 {
			mix = append(mix, fmt.Sprintf("- %d '%s'", counts[d], d))
		}
	}

	return fmt.Sprintf(`From a %s, %s with focus on %s.
Generate exactly %d multiple-choice questions with the following difficulty distribution:
%s

You MUST return your response as a single, raw JSON array of objects.
Do not include any introductory text, explanations, or markdown code fences like `+"```json or ```"+`.
The response should start with '[' and end with ']'.

Each object in the JSON array must have these exact keys:
- "question_text": A string containing the question.
- "image_path": A string representing the local path to the image file, use %q.
- "option_text": A list of four strings representing the possible answers.
- "correct_answer_index": The integer index (0-3) of the correct option.
- "difficulty_level": A string which must be 'Easy', 'Medium', or 'Hard'.
- "explanation": A string that clearly explains why the correct answer is right, based on scientific principles.
- "topic": A string indicating the main scientific topic or concept covered.
- "subtopic": A string indicating the specific subtopic or area within the main topic.

Ensure questions are diverse, scientifically accurate, and appropriately challenging for their difficulty level.`,
		context, approach, style, total, strings.Join(mix, "\n"), imageFilename)
}
