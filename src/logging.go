package main

import (
	"fmt"

	"github.com/kyohenrique/pokedex/src/config"
	"go.uber.org/zap"
)

// newLogger builds the development logger at the configured level. With a
// file set, log lines go there instead of stderr.
func newLogger(cfg config.LogConfig, file string) (*zap.SugaredLogger, error) {
	zapConfig := zap.NewDevelopmentConfig()
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	zapConfig.Level = level
	if file != "" {
		zapConfig.OutputPaths = []string{file}
		zapConfig.ErrorOutputPaths = []string{file}
	}
	logger, err := zapConfig.Build(zap.AddStacktrace(zap.FatalLevel))
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Sugar(), nil
}

func syncLogger(sugar *zap.SugaredLogger) {
	_ = sugar.Sync()
}
