package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyDays  int
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most-searched queries",
	Long:  `Aggregates the local search history into a popularity ranking.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 30, "history window in days")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of queries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if resultStore == nil {
		return errors.New("search history requires the result store")
	}

	since := time.Now().AddDate(0, 0, -historyDays)
	popular, err := resultStore.PopularQueries(cmd.Context(), since, historyLimit)
	if err != nil {
		return fmt.Errorf("reading search history: %w", err)
	}

	if len(popular) == 0 {
		cmd.Println("No searches recorded yet.")
		return nil
	}

	cmd.Printf("Top queries, last %d days:\n", historyDays)
	for i, p := range popular {
		cmd.Printf("  %2d. %s (%d)\n", i+1, p.Query, p.Count)
	}
	return nil
}
