package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppLogger is the application-wide structured logger.
// It defaults to a no-op logger so tests don't have to initialize it.
var AppLogger *zap.SugaredLogger = zap.NewNop().Sugar()

// InitializeLogger configures the global logger from the loaded config.
func InitializeLogger(config *Config) error {
	lvl, err := zapcore.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}

	var cfg zap.Config
	if config.Environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	AppLogger = logger.Sugar()
	return nil
}
