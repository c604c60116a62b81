package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/bankgen"
	"github.com/lisquiz/lisquiz/internal/llm"
	"github.com/lisquiz/lisquiz/internal/quiz"
)

var draftCmd = &cobra.Command{
	Use:   "draft <topic>",
	Short: "Draft a new bank with an LLM",
	Long: `Ask the configured LLM provider for a bank about <topic>, validate it and
write it as YAML. Review drafted banks before giving them to children.

The provider is chosen by LISQUIZ_LLM_PROVIDER, or discovered from
GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDraft,
}

func init() {
	draftCmd.Flags().String("variant", string(quiz.VariantChoice), "Quiz kind: choice, blank, sort or audio")
	draftCmd.Flags().Int("count", bankgen.DefaultCount, "Number of questions")
	draftCmd.Flags().Int("grade", 0, "School grade of the players (0 = any)")
	draftCmd.Flags().String("id", "", "Bank ID (default: derived from the topic)")
	draftCmd.Flags().StringP("out", "o", "", "Output file (default: <id>.yaml in the first bank directory, or stdout)")
	draftCmd.Flags().String("avoid", "", "Existing bank file whose questions must not be repeated")
}

func runDraft(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	variantName, _ := flags.GetString("variant")
	count, _ := flags.GetInt("count")
	grade, _ := flags.GetInt("grade")
	id, _ := flags.GetString("id")
	out, _ := flags.GetString("out")
	avoidPath, _ := flags.GetString("avoid")

	variant, err := quiz.ParseVariant(variantName)
	if err != nil {
		return err
	}
	input := bankgen.DraftInput{
		Topic:   strings.Join(args, " "),
		Variant: variant,
		Count:   count,
		Grade:   grade,
		ID:      id,
	}
	if avoidPath != "" {
		prev, err := bank.LoadFile(avoidPath)
		if err != nil {
			return err
		}
		for _, q := range prev.Questions() {
			input.Avoid = append(input.Avoid, q.Prompt)
		}
	}

	llmCfg, err := llm.Resolve()
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if llmCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, llmCfg.Timeout)
		defer cancel()
	}
	provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Drafting %d %s questions about %q with %s...\n",
		max(count, 1), variant.Label(), input.Topic, provider.ModelID())
	b, err := bankgen.New(provider, bankgen.DefaultConfig()).Draft(ctx, input)
	if err != nil {
		return fmt.Errorf("draft bank: %w", err)
	}
	data, err := b.Marshal()
	if err != nil {
		return err
	}

	if out == "" && len(cfg.BankDirs) > 0 {
		out = filepath.Join(cfg.BankDirs[0], b.ID+".yaml")
	}
	if out == "" || out == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if _, err := os.Stat(out); err == nil {
		return fmt.Errorf("%s already exists", out)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write bank: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d questions)\n", out, len(b.Items))
	return nil
}
