package log

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. Commands replace it with SetLogger once
// their configuration is known.
var Log = New("info", true)

// New builds a zap-backed logr.Logger writing to stderr.
func New(level string, development bool) logr.Logger {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	z, err := cfg.Build()
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(z)
}

// SetLogger replaces Log.
func SetLogger(l logr.Logger) {
	Log = l
}

func Error(err error, msg string, keysAndValues ...interface{}) {
	Log.Error(err, msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	Log.Info(msg, keysAndValues...)
}
