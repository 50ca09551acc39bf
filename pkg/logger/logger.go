package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global = zap.NewNop()

// SetupLogger builds the process logger for the given environment and installs
// it as the package-level logger used by the helpers below.
func SetupLogger(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)

	switch env {
	case "local", "dev":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		l, err = cfg.Build()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("cannot build logger: %s", err)
	}

	global = l

	return l
}

func Logger() *zap.Logger {
	return global
}

func Debug(msg string, fields ...zap.Field) {
	global.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	global.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	global.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	global.Error(msg, fields...)
}
