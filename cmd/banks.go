package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/logger"
	"github.com/lisquiz/lisquiz/internal/speech"
)

// loadBanks reads the bank files named in args. Without args it reads the
// configured bank directories, or the built-in samples when none is set.
func loadBanks(args []string) ([]*bank.Bank, error) {
	if len(args) > 0 {
		banks := make([]*bank.Bank, 0, len(args))
		for _, path := range args {
			b, err := bank.LoadFile(path)
			if err != nil {
				return nil, err
			}
			banks = append(banks, b)
		}
		return banks, nil
	}

	if len(cfg.BankDirs) == 0 {
		banks, err := bank.Samples()
		if err != nil {
			return nil, fmt.Errorf("load sample banks: %w", err)
		}
		return banks, nil
	}

	var banks []*bank.Bank
	for _, dir := range cfg.BankDirs {
		found, err := bank.LoadDir(dir)
		if err != nil && len(found) == 0 {
			return nil, err
		}
		if err != nil {
			// Broken files are skipped so one typo does not hide every bank.
			logger.Warn("some banks were skipped", logrus.Fields{"dir": dir, "error": err.Error()})
		}
		banks = append(banks, found...)
	}
	logger.Info("banks loaded", logrus.Fields{"dirs": cfg.BankDirs, "count": len(banks)})
	return banks, nil
}

// firstBankDir returns the directory shown when no bank is found.
func firstBankDir() string {
	if len(cfg.BankDirs) == 0 {
		return ""
	}
	return cfg.BankDirs[0]
}

// newSpeaker builds the speaker selected by LISQUIZ_TTS and starts loading
// its voice list.
func newSpeaker(ctx context.Context) *speech.Speaker {
	engine := speech.NewCommandEngine(cfg.TTS)
	if !engine.Available() {
		logger.Info("speech unavailable", logrus.Fields{"tts": cfg.TTS})
	}
	engine.Load(ctx)
	return speech.NewSpeaker(engine)
}
