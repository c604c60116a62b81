package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/console"
	"github.com/lisquiz/lisquiz/internal/quiz"
	"github.com/lisquiz/lisquiz/internal/store"
)

var previewCmd = &cobra.Command{
	Use:   "preview <bank>",
	Short: "Play a bank line by line in the console",
	Long: `Play one bank without the full-screen interface. <bank> is a bank file
or the ID of a loaded bank. Answers are typed one per line; type ? for help.

Useful for trying out a freshly written or drafted bank.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("record", false, "Record the run in quiz history")
	previewCmd.Flags().String("voice", "", "Preferred speech voice (overrides LISQUIZ_VOICE)")
	previewCmd.Flags().String("tts", "", "Speech engine: auto, off, or a binary name (overrides LISQUIZ_TTS)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	applySpeechFlags(cmd)

	b, err := findBank(args[0])
	if err != nil {
		return err
	}

	var repo store.EventRepo
	if record, _ := cmd.Flags().GetBool("record"); record {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		repo = st.EventRepo()
	}

	speaker := newSpeaker(ctx)
	defer speaker.Stop()

	runner := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), speaker)
	if f, ok := cmd.InOrStdin().(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		runner.SetPrompt("")
	}
	tracker := store.NewTracker(repo, b.ID, b.Title, b.Variant, console.Frontend)

	qcfg := b.Config()
	if qcfg.Voice == "" {
		qcfg.Voice = cfg.Voice
	}
	qcfg.Listener = tracker

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", b.Title, b.Variant.Label())
	s, err := quiz.NewSession(qcfg, b.Questions(), runner)
	if err != nil {
		return fmt.Errorf("bank %s: %w", b.ID, err)
	}
	tracker.Start(s.Total())
	if err := runner.Run(ctx, s); err != nil && !errors.Is(err, ctx.Err()) {
		return err
	}
	return nil
}

// findBank loads arg as a bank file, falling back to a loaded bank with
// that ID.
func findBank(arg string) (*bank.Bank, error) {
	b, fileErr := bank.LoadFile(arg)
	if fileErr == nil {
		return b, nil
	}
	banks, err := loadBanks(nil)
	if err != nil {
		return nil, err
	}
	if b := bank.Find(banks, arg); b != nil {
		return b, nil
	}
	return nil, fileErr
}
