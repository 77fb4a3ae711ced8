package observability

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/chamados/internal/config"
)

// NewLogger builds the service logger. APP_ENV selects the mode: development
// logs carry caller and stack traces from warn up, production logs are sampled
// and only attach stacks to errors. Every entry is tagged with the service name.
func NewLogger(app config.AppConfig, cfg config.LoggerConfig) (*zap.Logger, error) {
	logger, err := loggerConfig(app, cfg).Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", app.Name), zap.String("env", app.Env)), nil
}

// IsDevelopment reports whether env names a local or development deployment.
func IsDevelopment(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func loggerConfig(app config.AppConfig, cfg config.LoggerConfig) zap.Config {
	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encoder := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "ts",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "json",
		EncoderConfig:    encoder,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if IsDevelopment(app.Env) {
		zcfg.Development = true
	} else {
		zcfg.DisableCaller = true
		zcfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	}
	return zcfg
}
