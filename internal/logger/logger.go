package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. "development" gives a colored console
// encoder at debug level; anything else is the JSON production config.
func New(mode string) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	switch mode {
	case "development", "dev":
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = cfg.Build()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Nop is a logger that discards everything, used by tests and the quiet CLI.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
