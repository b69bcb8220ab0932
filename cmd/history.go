package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"physiq/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past exam attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		attempts, err := s.AttemptRepo().List(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		if len(attempts) == 0 {
			fmt.Println("No exam attempts recorded yet.")
			return nil
		}

		fmt.Printf("%-19s  %-24s  %9s  %8s  %7s  %s\n",
			"Started", "Bank", "Questions", "Answered", "Score", "Time")
		fmt.Println(strings.Repeat("─", 84))

		for _, a := range attempts {
			bank := a.QuestionFile
			if len(bank) > 24 {
				bank = "…" + bank[len(bank)-23:]
			}
			fmt.Printf("%-19s  %-24s  %9d  %8d  %6.1f%%  %s\n",
				a.StartedAt.Local().Format("2006-01-02 15:04:05"),
				bank,
				a.TotalQuestions,
				a.Answered,
				a.ScorePercent,
				formatDuration(a.FinishedAt.Sub(a.StartedAt)),
			)
		}
		return nil
	},
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%02ds", m, s)
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
}
