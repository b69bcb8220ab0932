package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"physiq/internal/imagestore"
	"physiq/internal/llm"
	"physiq/internal/quizgen"
	"physiq/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate questions from diagram images",
	Long:  "Generate multiple-choice physics questions from a local image directory or an S3 bucket using a vision model.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := llm.WithPurpose(cmd.Context(), "question-generation")

		imagesDir, _ := cmd.Flags().GetString("images-dir")
		s3Bucket, _ := cmd.Flags().GetString("s3-bucket")
		s3Prefix, _ := cmd.Flags().GetString("s3-prefix")
		awsRegion, _ := cmd.Flags().GetString("aws-region")
		output, _ := cmd.Flags().GetString("output")
		maxImages, _ := cmd.Flags().GetInt("max-images")
		maxRetries, _ := cmd.Flags().GetInt("max-retries")
		noRandomize, _ := cmd.Flags().GetBool("no-randomize")
		seed, _ := cmd.Flags().GetUint64("seed")
		noStats, _ := cmd.Flags().GetBool("no-stats")
		distSpec, _ := cmd.Flags().GetString("distribution")

		var src imagestore.Store
		var err error
		switch {
		case s3Bucket != "":
			src, err = imagestore.NewS3Store(ctx, s3Bucket, s3Prefix, awsRegion)
		case imagesDir != "":
			src, err = imagestore.NewLocalDir(imagesDir)
		default:
			return fmt.Errorf("either --images-dir or --s3-bucket is required")
		}
		if err != nil {
			return fmt.Errorf("open image source: %w", err)
		}

		batchCfg := quizgen.DefaultBatchConfig()
		batchCfg.MaxImages = maxImages
		batchCfg.Randomize = !noRandomize
		batchCfg.Seed = seed
		if distSpec != "" {
			dist, err := quizgen.ParseDistribution(distSpec)
			if err != nil {
				return fmt.Errorf("parse --distribution: %w", err)
			}
			batchCfg.Distribution = dist
		}

		genCfg := quizgen.DefaultGeneratorConfig()
		if maxRetries > 0 {
			genCfg.MaxRetries = maxRetries
		}

		// Request logging is best-effort; generation proceeds without it.
		var eventLog store.EventRepo
		if dbPath, err := resolveDBPath(cmd); err == nil {
			if st, err := store.Open(dbPath); err == nil {
				defer st.Close()
				eventLog = st.EventRepo()
			}
		}

		provider, err := llm.NewProviderFromEnv(ctx, eventLog)
		if err != nil {
			return fmt.Errorf("configure model provider: %w", err)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		gen := quizgen.NewGenerator(provider, genCfg, logger)
		batch := quizgen.NewBatch(src, gen, batchCfg, logger)

		fmt.Printf("Generating questions from %s with %s\n", src.Source(), provider.ModelID())

		result, err := batch.Run(ctx)
		if err != nil {
			return err
		}

		statsPath, err := quizgen.WriteResults(result, output, !noStats)
		if err != nil {
			return fmt.Errorf("write results: %w", err)
		}

		st := result.Stats
		fmt.Println()
		fmt.Printf("Images processed: %d (%d ok, %d failed, %.0f%% success)\n",
			st.TotalImages, st.Successful, st.Failed, st.SuccessRate)
		fmt.Printf("Questions generated: %d\n", st.TotalQuestions)
		for _, d := range quizgen.Difficulties {
			if n := st.Distribution[d]; n > 0 {
				fmt.Printf("  %-6s %d\n", d, n)
			}
		}
		fmt.Printf("Saved to %s\n", output)
		if statsPath != "" {
			fmt.Printf("Stats saved to %s\n", statsPath)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("images-dir", "", "Local directory of diagram images")
	generateCmd.Flags().String("s3-bucket", "", "S3 bucket holding diagram images")
	generateCmd.Flags().String("s3-prefix", "", "Key prefix to list under the bucket")
	generateCmd.Flags().String("aws-region", "", "AWS region (defaults to the SDK chain)")
	generateCmd.Flags().StringP("output", "o", "all_questions.json", "Output file for the question bank")
	generateCmd.Flags().Int("max-images", 0, "Process at most N images (0 = all)")
	generateCmd.Flags().Int("max-retries", 0, "Generation attempts per image (0 = default)")
	generateCmd.Flags().Bool("no-randomize", false, "Disable prompt and count randomization")
	generateCmd.Flags().Uint64("seed", 0, "Seed for randomized runs (0 = entropy)")
	generateCmd.Flags().Bool("no-stats", false, "Skip writing the stats file")
	generateCmd.Flags().String("distribution", "", "Difficulty mix, e.g. Easy=0.5,Medium=0.3,Hard=0.2")
}
