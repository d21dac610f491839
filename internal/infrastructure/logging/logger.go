package logging

import (
	"fmt"
	"strings"

	"invoicing/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the root logger. format "console" gives a human readable
// development encoder; anything else logs JSON.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var zc zap.Config
	if strings.EqualFold(cfg.Format, "console") {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "time"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build(zap.Fields(zap.String("service", "invoicing")))
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// MaskSecret keeps the processor prefix and the last four characters so
// operators can tell keys apart without exposing them.
func MaskSecret(secret string) string {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	prefix := ""
	if i := strings.LastIndex(secret[:len(secret)-4], "_"); i >= 0 && i < 8 {
		prefix = secret[:i+1]
	}
	return prefix + strings.Repeat("*", len(secret)-len(prefix)-4) + secret[len(secret)-4:]
}
