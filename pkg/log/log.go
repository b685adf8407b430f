package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	encoding    string
	outputPaths []string
}

// Option customizes the logger built by InitLog.
type Option func(*options)

// WithEncoding selects the zap encoding, "console" (default) or "json".
func WithEncoding(encoding string) Option {
	return func(o *options) {
		o.encoding = encoding
	}
}

// WithOutputPaths replaces the default stdout sink. The CLI logs to stderr so that
// rendered plans on stdout can be piped.
func WithOutputPaths(paths ...string) Option {
	return func(o *options) {
		o.outputPaths = paths
	}
}

func InitLog(lvl zap.AtomicLevel, opts ...Option) *zap.Logger {
	o := options{
		encoding:    "console",
		outputPaths: []string{"stdout"},
	}
	for _, opt := range opts {
		opt(&o)
	}

	loggerCfg := &zap.Config{
		Level:    lvl,
		Encoding: o.encoding,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "severity",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder, EncodeCaller: zapcore.ShortCallerEncoder},
		OutputPaths:      o.outputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	plain, err := loggerCfg.Build(zap.AddStacktrace(zap.DPanicLevel))
	if err != nil {
		panic(err)
	}

	return plain
}

// ParseLevel parses a level name, falling back to info for unknown values.
func ParseLevel(level string) zap.AtomicLevel {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return lvl
}
