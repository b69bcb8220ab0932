package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"physiq/internal/llm"
)

const generationSystemPrompt = "You are an expert physics educator who writes " +
	"rigorous multiple-choice questions from diagrams and figures. You respond " +
	"only with the JSON the instructions ask for."

// GeneratorConfig tunes per-image generation.
type GeneratorConfig struct {
	// MaxRetries is the number of attempts per image before giving up.
	MaxRetries int

	// MaxTokens caps each model response.
	MaxTokens int

	// Temperature for generation. Question writing wants some variety.
	Temperature float64

	// Sleep is swapped out in tests. Defaults to a context-aware
	// time.Sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultGeneratorConfig matches the batch pipeline defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxRetries:  3,
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}

// Generator turns one diagram image into a validated question list.
type Generator struct {
	provider llm.Provider
	config   GeneratorConfig
	logger   *slog.Logger
}

// NewGenerator wires a generator onto a provider. A nil logger uses the
// default slog logger.
func NewGenerator(provider llm.Provider, config GeneratorConfig, logger *slog.Logger) *Generator {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 8192
	}
	if config.Sleep == nil {
		config.Sleep = sleepCtx
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{provider: provider, config: config, logger: logger}
}

// Generate produces questions for a single image, retrying on malformed
// or invalid model output. A nil slice with a nil error never happens:
// exhausted retries surface the last error.
func (g *Generator) Generate(ctx context.Context, spec PromptSpec, imagePath string, img llm.ImageAttachment) ([]Question, error) {
	filename := path.Base(imagePath)

	var lastErr error
	for attempt := 1; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 1 {
			// Linear backoff between attempts.
			wait := time.Duration(attempt-1) * 2 * time.Second
			g.logger.Info("retrying question generation",
				"image", filename, "attempt", attempt, "wait", wait)
			if err := g.config.Sleep(ctx, wait); err != nil {
				return nil, err
			}
		}

		questions, err := g.generateOnce(ctx, spec, imagePath, filename, img)
		if err == nil {
			g.logger.Info("generated questions",
				"image", filename, "count", len(questions), "attempt", attempt)
			return questions, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.logger.Warn("question generation attempt failed",
			"image", filename, "attempt", attempt, "error", err)
	}

	return nil, fmt.Errorf("generate questions for %s: %w", filename, lastErr)
}

func (g *Generator) generateOnce(ctx context.Context, spec PromptSpec, imagePath, filename string, img llm.ImageAttachment) ([]Question, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      generationSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: spec.Text}},
		Images:      []llm.ImageAttachment{img},
		Schema:      QuestionListSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, err
	}

	questions, err := ParseQuestions(resp.Content)
	if err != nil {
		return nil, err
	}

	// The model's own values for these fields are unreliable; the
	// pipeline owns them.
	assigned := expandCounts(spec.Counts)
	for i := range questions {
		questions[i].ImagePath = imagePath
		questions[i].ImageFilename = filename
		if i < len(assigned) {
			questions[i].Difficulty = assigned[i]
		}
		if questions[i].Topic == "" {
			questions[i].Topic = "Physics"
		}
		if questions[i].Subtopic == "" {
			questions[i].Subtopic = "General"
		}
	}

	return questions, nil
}

// ParseQuestions decodes and structurally validates a model reply.
// Markdown code fences around the JSON are tolerated and stripped.
func ParseQuestions(raw json.RawMessage) ([]Question, error) {
	text := StripFences(string(raw))

	var questions []Question
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		return nil, &ErrMalformedResponse{Content: text, Err: err}
	}
	if len(questions) == 0 {
		return nil, &ErrEmptyResponse{}
	}

	for i, q := range questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			return nil, &ErrSchemaViolation{Index: i, Field: "question_text", Reason: "is empty"}
		}
		if len(q.Options) != 4 {
			return nil, &ErrSchemaViolation{Index: i, Field: "option_text",
				Reason: fmt.Sprintf("has %d options, want 4", len(q.Options))}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
			return nil, &ErrSchemaViolation{Index: i, Field: "correct_answer_index",
				Reason: fmt.Sprintf("is %d, want 0-3", q.CorrectIndex)}
		}
		if _, err := ParseDifficulty(string(q.Difficulty)); err != nil {
			return nil, &ErrSchemaViolation{Index: i, Field: "difficulty_level",
				Reason: fmt.Sprintf("is %q", q.Difficulty)}
		}
		if strings.TrimSpace(q.Explanation) == "" {
			return nil, &ErrSchemaViolation{Index: i, Field: "explanation", Reason: "is empty"}
		}
	}

	return questions, nil
}

// StripFences removes a markdown code fence wrapper, if present, and
// trims surrounding whitespace.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// expandCounts flattens difficulty counts into an ordered label list,
// canonical label order, for positional assignment onto questions.
func expandCounts(counts map[Difficulty]int) []Difficulty {
	var labels []Difficulty
	for _, d := range Difficulties {
		for range counts[d] {
			labels = append(labels, d)
		}
	}
	return labels
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
