// Package config resolves lisquiz settings from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file. Command-line flags override them in cmd.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variable names.
const (
	EnvDB             = "LISQUIZ_DB"
	EnvBanks          = "LISQUIZ_BANKS"
	EnvLog            = "LISQUIZ_LOG"
	EnvLogLevel       = "LISQUIZ_LOG_LEVEL"
	EnvVoice          = "LISQUIZ_VOICE"
	EnvTTS            = "LISQUIZ_TTS"
	EnvAddr           = "LISQUIZ_ADDR"
	EnvAllowedOrigins = "LISQUIZ_ALLOWED_ORIGINS"
)

// Defaults.
const (
	DefaultAddr     = ":8080"
	DefaultTTS      = "auto"
	DefaultLogLevel = "info"
)

// Config holds the resolved settings.
type Config struct {
	// DBPath is empty when the store should pick its default location.
	DBPath string
	// BankDirs are searched for bank files in addition to the embedded samples.
	BankDirs []string
	LogPath  string
	LogLevel logrus.Level
	// Voice is the preferred speech voice name, if any.
	Voice string
	// TTS selects the speech engine: "auto", "off", or a binary name.
	TTS            string
	Addr           string
	AllowedOrigins []string
}

// LoadDotEnv reads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		DBPath:         os.Getenv(EnvDB),
		BankDirs:       splitList(os.Getenv(EnvBanks), string(os.PathListSeparator)),
		LogPath:        os.Getenv(EnvLog),
		LogLevel:       logrus.InfoLevel,
		Voice:          strings.TrimSpace(os.Getenv(EnvVoice)),
		TTS:            strings.TrimSpace(os.Getenv(EnvTTS)),
		Addr:           strings.TrimSpace(os.Getenv(EnvAddr)),
		AllowedOrigins: splitList(os.Getenv(EnvAllowedOrigins), ","),
	}

	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		parsed, err := logrus.ParseLevel(lvl)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = parsed
	}
	if cfg.TTS == "" {
		cfg.TTS = DefaultTTS
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.LogPath == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return Config{}, err
		}
		cfg.LogPath = p
	}
	return cfg, nil
}

// DefaultLogPath returns $XDG_STATE_HOME/lisquiz/lisquiz.log, falling back
// to ~/.local/state.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "lisquiz", "lisquiz.log"), nil
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
