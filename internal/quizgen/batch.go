package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"physiq/internal/imagestore"
	"physiq/internal/llm"
)

// BatchConfig controls a full generation run over an image store.
type BatchConfig struct {
	// MaxImages caps how many images are processed; 0 means all.
	// With randomization on, the cap samples images instead of
	// truncating the sorted listing.
	MaxImages int

	// Randomize enables prompt variation and image sampling.
	Randomize bool

	// Distribution overrides the preset difficulty mixes when non-nil.
	Distribution Distribution

	// Seed makes randomized runs reproducible. Zero seeds from entropy.
	Seed uint64

	// Delay between images, to stay under provider rate limits.
	Delay time.Duration
}

// DefaultBatchConfig matches the CLI defaults.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{Randomize: true, Delay: time.Second}
}

// BatchResult is the output of one run: the questions from every
// successful image plus the run's stats.
type BatchResult struct {
	Questions []Question
	Stats     ProcessingStats
}

// Batch runs the generation pipeline: list images, prompt the model
// per image, collect validated questions, aggregate stats.
type Batch struct {
	store  imagestore.Store
	gen    *Generator
	config BatchConfig
	logger *slog.Logger
	rng    *rand.Rand
}

// NewBatch wires a batch over an image store and a generator.
func NewBatch(store imagestore.Store, gen *Generator, config BatchConfig, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	var rng *rand.Rand
	if config.Seed != 0 {
		rng = rand.New(rand.NewPCG(config.Seed, config.Seed^0x9e3779b97f4a7c15))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Batch{store: store, gen: gen, config: config, logger: logger, rng: rng}
}

// Run processes the store's images sequentially. Per-image failures are
// recorded in the stats and do not stop the run; Run itself fails only
// when the store has no images, the listing fails, or the context is
// canceled.
func (b *Batch) Run(ctx context.Context) (*BatchResult, error) {
	refs, err := b.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no image files found in %s", b.store.Source())
	}

	refs = b.selectRefs(refs)
	b.logger.Info("starting batch", "source", b.store.Source(), "images", len(refs))

	prompts := NewPromptBuilder(b.config.Randomize, b.config.Distribution, b.rng)

	stats := ProcessingStats{
		TotalImages:  len(refs),
		StartTime:    time.Now(),
		Source:       b.store.Source(),
		Distribution: make(map[Difficulty]int),
		ImageResults: make(map[string]ImageOutcome),
	}

	var all []Question
	for i, ref := range refs {
		if i > 0 && b.config.Delay > 0 {
			if err := sleepCtx(ctx, b.config.Delay); err != nil {
				return nil, err
			}
		}

		b.logger.Info("processing image",
			"image", ref.Filename(), "index", i+1, "total", len(refs))

		questions, err := b.processOne(ctx, prompts, ref)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			stats.Failed++
			stats.ImageResults[ref.Filename()] = ImageOutcome{
				Status: "failed",
				Key:    ref.Key,
				URL:    ref.URL,
				Error:  err.Error(),
			}
			b.logger.Error("image failed", "image", ref.Filename(), "error", err)
			continue
		}

		all = append(all, questions...)
		stats.Successful++
		stats.TotalQuestions += len(questions)
		outcome := ImageOutcome{
			Status:        "success",
			Key:           ref.Key,
			URL:           ref.URL,
			QuestionCount: len(questions),
		}
		for _, q := range questions {
			stats.Distribution[q.Difficulty]++
		}
		stats.ImageResults[ref.Filename()] = outcome
	}

	stats.EndTime = time.Now()
	stats.SuccessRate = float64(stats.Successful) / float64(stats.TotalImages) * 100

	b.logger.Info("batch complete",
		"successful", stats.Successful,
		"failed", stats.Failed,
		"questions", stats.TotalQuestions)

	return &BatchResult{Questions: all, Stats: stats}, nil
}

func (b *Batch) processOne(ctx context.Context, prompts *PromptBuilder, ref imagestore.Ref) ([]Question, error) {
	mimeType, err := imagestore.MIMEType(ref.Filename())
	if err != nil {
		return nil, err
	}

	data, err := b.store.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	if _, err := imagestore.ValidateImage(data); err != nil {
		return nil, err
	}

	spec := prompts.Build(ref.Filename())
	return b.gen.Generate(ctx, spec, ref.URL, llm.ImageAttachment{
		MIMEType: mimeType,
		Data:     data,
	})
}

// selectRefs applies the MaxImages cap: a random sample when
// randomizing, a prefix of the sorted listing otherwise.
func (b *Batch) selectRefs(refs []imagestore.Ref) []imagestore.Ref {
	if b.config.MaxImages <= 0 || len(refs) <= b.config.MaxImages {
		return refs
	}
	if !b.config.Randomize {
		return refs[:b.config.MaxImages]
	}
	sample := make([]imagestore.Ref, len(refs))
	copy(sample, refs)
	b.rng.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})
	return sample[:b.config.MaxImages]
}

// WriteResults saves the question list to outputFile and, unless
// skipped, the run stats next to it as <base>_stats.json. Returns the
// stats path, empty when stats were skipped.
func WriteResults(result *BatchResult, outputFile string, saveStats bool) (string, error) {
	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := writeJSON(outputFile, result.Questions); err != nil {
		return "", err
	}

	if !saveStats {
		return "", nil
	}

	base := strings.TrimSuffix(outputFile, filepath.Ext(outputFile))
	statsFile := base + "_stats.json"
	if err := writeJSON(statsFile, result.Stats); err != nil {
		return "", err
	}
	return statsFile, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
