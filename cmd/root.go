package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lisquiz/lisquiz/internal/config"
	"github.com/lisquiz/lisquiz/internal/logger"
	"github.com/lisquiz/lisquiz/internal/store"
)

// logToStderr marks commands that keep logging on stderr instead of the
// log file.
const logToStderr = "log-stderr"

var (
	cfg     config.Config
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "lisquiz",
	Short: "Quiz player for kids",
	Long: `lisquiz plays short quizzes for children in the terminal or a browser.

Four kinds of quiz are supported: multiple choice, fill the blank,
sort words into two boxes, and listen-and-pick.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
	RunE: runPlay,
}

// Execute runs the command line until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides LISQUIZ_DB)")
	pf.StringSlice("banks", nil, "Directories with bank files (overrides LISQUIZ_BANKS)")
	pf.String("log", "", "Log file path (overrides LISQUIZ_LOG)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides LISQUIZ_LOG_LEVEL)")
	pf.String("env-file", ".env", "File with KEY=VALUE settings loaded before the environment is read")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(voicesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup resolves configuration from .env, the environment and flags, then
// points the logger at its destination.
func setup(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	c, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("read configuration: %w", err)
	}
	if err := applyFlags(cmd, &c); err != nil {
		return err
	}
	cfg = c

	if cfg.LogLevel >= logrus.DebugLevel {
		logger.SetDebugMode()
	}
	logger.SetLevel(cfg.LogLevel)

	if cmd.Annotations[logToStderr] != "" {
		logger.SetOutput(os.Stderr)
		return nil
	}
	closer, err := logger.ToFile(cfg.LogPath)
	if err != nil {
		// The program is still usable without a log file.
		fmt.Fprintln(os.Stderr, "logging disabled:", err)
		logger.SetOutput(io.Discard)
		return nil
	}
	logFile = closer
	return nil
}

func applyFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if p, _ := flags.GetString("db"); p != "" {
		c.DBPath = p
	}
	if dirs, _ := flags.GetStringSlice("banks"); len(dirs) > 0 {
		c.BankDirs = dirs
	}
	if p, _ := flags.GetString("log"); p != "" {
		c.LogPath = p
	}
	if lvl, _ := flags.GetString("log-level"); lvl != "" {
		parsed, err := logrus.ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		c.LogLevel = parsed
	}
	return nil
}

// resolveDBPath returns the database path using --db or LISQUIZ_DB, then
// the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the history database.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
