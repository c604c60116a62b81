package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lisquiz/lisquiz/internal/quiz"
	"github.com/lisquiz/lisquiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("recent")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.EventRepo()
		banks, err := repo.BankStats(ctx)
		if err != nil {
			return fmt.Errorf("query bank stats: %w", err)
		}
		recent, err := repo.RecentSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("query recent sessions: %w", err)
		}
		printStats(cmd.OutOrStdout(), banks, recent)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("recent", 10, "Number of recent quizzes to list")
}

func printStats(w io.Writer, banks []store.BankStat, recent []store.SessionSummary) {
	if len(banks) == 0 {
		fmt.Fprintln(w, "No quizzes played yet.")
		return
	}

	fmt.Fprintln(w, "Banks")
	fmt.Fprintln(w, strings.Repeat("─", 78))
	fmt.Fprintf(w, "%-28s  %-16s  %6s  %6s  %6s  %8s\n",
		"Bank", "Kind", "Played", "Best", "Last", "Accuracy")
	fmt.Fprintln(w, strings.Repeat("─", 78))
	for _, b := range banks {
		fmt.Fprintf(w, "%-28s  %-16s  %6d  %6s  %6s  %7.0f%%\n",
			truncate(b.BankTitle, 28),
			quiz.Variant(b.Variant).Label(),
			b.Completed,
			fmt.Sprintf("%d/%d", b.BestScore, b.BestTotal),
			fmt.Sprintf("%d/%d", b.LastScore, b.LastTotal),
			b.Accuracy()*100,
		)
	}

	if len(recent) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent quizzes")
	fmt.Fprintln(w, strings.Repeat("─", 78))
	for _, s := range recent {
		fmt.Fprintf(w, "%-16s  %-28s  %5s  %6s  %s\n",
			s.FinishedAt.Local().Format("2006-01-02 15:04"),
			truncate(s.BankTitle, 28),
			fmt.Sprintf("%d/%d", s.Score, s.Total),
			formatDuration(s.Duration),
			s.Frontend,
		)
	}
}

func formatDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
