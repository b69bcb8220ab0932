package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"physiq/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "physiq",
	Short: "AI physics exam generator and trainer",
	Long:  "PhysIQ — generates multiple-choice physics questions from diagram images and runs timed exams in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExam(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// API keys and provider settings may live in a local .env file.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PHYSIQ_DB env var)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PHYSIQ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
