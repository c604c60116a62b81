package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lisquiz/lisquiz/internal/speech"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the installed speech voices",
	RunE: func(cmd *cobra.Command, args []string) error {
		applySpeechFlags(cmd)
		lang, _ := cmd.Flags().GetString("lang")

		engine := speech.NewCommandEngine(cfg.TTS)
		voices, err := engine.LoadSync(cmd.Context())
		if errors.Is(err, speech.ErrUnsupported) {
			fmt.Fprintln(cmd.OutOrStdout(), "No speech engine found. Install espeak-ng, or use macOS say.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("list voices: %w", err)
		}
		printVoices(cmd.OutOrStdout(), engine.Name(), voices, lang, cfg.Voice)
		return nil
	},
}

func init() {
	voicesCmd.Flags().String("lang", speech.DefaultLang, "Language used to pick the default voice")
	voicesCmd.Flags().String("voice", "", "Preferred voice (overrides LISQUIZ_VOICE)")
	voicesCmd.Flags().String("tts", "", "Speech engine: auto, off, or a binary name (overrides LISQUIZ_TTS)")
}

// printVoices lists voices and marks the one lisquiz would choose.
func printVoices(w io.Writer, engine string, voices []speech.Voice, lang, preferred string) {
	chosen, ok := speech.ChooseVoice(voices, engine, lang, preferred)
	fmt.Fprintf(w, "Engine: %s (%d voices)\n", engine, len(voices))
	fmt.Fprintln(w, strings.Repeat("─", 48))
	for _, v := range voices {
		mark := " "
		if ok && v == chosen {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-32s  %s\n", mark, truncate(v.Name, 32), v.Lang)
	}
	if ok {
		fmt.Fprintf(w, "\n* used for %s\n", lang)
	}
}
