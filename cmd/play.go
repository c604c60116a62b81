package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lisquiz/lisquiz/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play [bank files]",
	Short: "Play quizzes in the terminal",
	Long: `Open the quiz picker. With a single bank file the quiz starts right away
and leaving it exits the program.`,
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().String("voice", "", "Preferred speech voice (overrides LISQUIZ_VOICE)")
		c.Flags().String("tts", "", "Speech engine: auto, off, or a binary name (overrides LISQUIZ_TTS)")
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	applySpeechFlags(cmd)

	banks, err := loadBanks(args)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	speaker := newSpeaker(ctx)
	defer speaker.Stop()

	start := ""
	if len(args) == 1 && len(banks) == 1 {
		start = banks[0].ID
	}

	opts := app.Options{
		Banks:   banks,
		BankDir: firstBankDir(),
		Repo:    st.EventRepo(),
		Speaker: speaker,
		Voice:   cfg.Voice,
	}
	if err := app.Run(ctx, opts, start); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

func applySpeechFlags(cmd *cobra.Command) {
	if v, _ := cmd.Flags().GetString("voice"); v != "" {
		cfg.Voice = v
	}
	if t, _ := cmd.Flags().GetString("tts"); t != "" {
		cfg.TTS = t
	}
}
