package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"physiq/internal/app"
	"physiq/internal/exam"
	"physiq/internal/store"
)

var examCmd = &cobra.Command{
	Use:   "exam [questions-file]",
	Short: "Take a timed exam from a question bank",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExam(cmd, args...)
	},
}

// runExam loads the question bank, opens the attempt store, and
// launches the TUI.
func runExam(cmd *cobra.Command, args ...string) error {
	questionFile := "all_questions.json"
	if len(args) > 0 {
		questionFile = args[0]
	}

	bank, err := exam.LoadBank(questionFile)
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}

	opts := app.Options{Bank: bank}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		// Attempts just won't be saved.
		fmt.Fprintln(cmd.ErrOrStderr(), "attempt history unavailable:", err)
	} else {
		defer st.Close()
		opts.Attempts = st.AttemptRepo()
	}

	return app.Run(opts)
}
