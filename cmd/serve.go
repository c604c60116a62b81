package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lisquiz/lisquiz/internal/api"
	"github.com/lisquiz/lisquiz/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve [bank files]",
	Short: "Serve quizzes over HTTP/JSON",
	Long: `Serve the quiz banks to browser frontends. Each POST /sessions starts a
quiz; the responses describe what the page must draw and speak.`,
	Annotations: map[string]string{logToStderr: "true"},
	RunE:        runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides LISQUIZ_ADDR)")
	serveCmd.Flags().StringSlice("origins", nil, "Allowed CORS origins (overrides LISQUIZ_ALLOWED_ORIGINS)")
	serveCmd.Flags().String("voice", "", "Preferred speech voice passed to browsers (overrides LISQUIZ_VOICE)")
	serveCmd.Flags().Bool("no-history", false, "Do not record quiz history")
}

func runServe(cmd *cobra.Command, args []string) error {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if origins, _ := cmd.Flags().GetStringSlice("origins"); len(origins) > 0 {
		cfg.AllowedOrigins = origins
	}
	if v, _ := cmd.Flags().GetString("voice"); v != "" {
		cfg.Voice = v
	}

	banks, err := loadBanks(args)
	if err != nil {
		return err
	}

	var repo store.EventRepo
	if off, _ := cmd.Flags().GetBool("no-history"); !off {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		repo = st.EventRepo()
	}

	opts := api.DefaultOptions()
	opts.AllowedOrigins = cfg.AllowedOrigins
	opts.Voice = cfg.Voice

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d banks on %s\n", len(banks), cfg.Addr)
	return api.NewServer(banks, repo, opts).ListenAndServe(cmd.Context(), cfg.Addr)
}
