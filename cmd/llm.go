package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lisquiz/lisquiz/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM calls made while drafting banks",
}

var llmLogCmd = &cobra.Command{
	Use:   "log",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query LLM events: %w", err)
		}
		printLLMLog(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get LLM event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("LLM event %d not found", id)
		}
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show token usage per purpose and per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		byPurpose, err := st.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := st.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		printLLMUsage(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

func init() {
	llmLogCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmLogCmd.Flags().StringP("purpose", "p", "", "Only show calls with this purpose, e.g. bank_draft")

	llmCmd.AddCommand(llmLogCmd)
	llmCmd.AddCommand(llmShowCmd)
	llmCmd.AddCommand(llmUsageCmd)
}

func printLLMLog(w io.Writer, events []store.LLMRequestEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM calls recorded.")
		return
	}
	fmt.Fprintf(w, "%-5s  %-16s  %-12s  %-24s  %7s  %7s  %6s\n",
		"ID", "When", "Purpose", "Model", "In", "Out", "Result")
	fmt.Fprintln(w, strings.Repeat("─", 92))
	for _, e := range events {
		result := fmt.Sprintf("%dms", e.LatencyMs)
		if !e.Success {
			result = "failed"
		}
		fmt.Fprintf(w, "%-5d  %-16s  %-12s  %-24s  %7d  %7d  %6s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			truncate(e.Purpose, 12),
			truncate(e.Model, 24),
			e.InputTokens,
			e.OutputTokens,
			result,
		)
	}
}

func printLLMEvent(w io.Writer, e *store.LLMRequestEventRecord) {
	fmt.Fprintf(w, "Call %d at %s\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "%s / %s for %s, %d tokens in, %d out, %dms\n",
		e.Provider, e.Model, e.Purpose, e.InputTokens, e.OutputTokens, e.LatencyMs)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error: %s\n", e.ErrorMessage)
	}
	section := func(title, body string) {
		fmt.Fprintf(w, "\n── %s %s\n", title, strings.Repeat("─", max(0, 56-len(title))))
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintln(w, body)
	}
	section("Request", e.RequestBody)
	section("Response", e.ResponseBody)
}

func printLLMUsage(w io.Writer, byPurpose []store.LLMUsageStats, byModel []store.LLMModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	var calls, in, out int
	fmt.Fprintf(w, "%-24s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg ms")
	fmt.Fprintln(w, strings.Repeat("─", 66))
	for _, u := range byPurpose {
		fmt.Fprintf(w, "%-24s  %6d  %10d  %10d  %8d\n",
			truncate(u.Purpose, 24), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	fmt.Fprintln(w, strings.Repeat("─", 66))
	fmt.Fprintf(w, "%-24s  %6d  %10d  %10d\n", "total", calls, in, out)

	if len(byModel) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%-24s  %6s  %10s  %10s\n", "Model", "Calls", "Input", "Output")
	fmt.Fprintln(w, strings.Repeat("─", 56))
	for _, u := range byModel {
		fmt.Fprintf(w, "%-24s  %6d  %10d  %10d\n",
			truncate(u.Model, 24), u.Calls, u.InputTokens, u.OutputTokens)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
