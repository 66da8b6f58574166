package utils

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logMu  sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// InitLogger must be called once at startup (e.g. in main.go). Until then
// Log() hands out a no-op logger, which keeps tests quiet.
func InitLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logMu.Lock()
	logger = l.Sugar()
	logMu.Unlock()
	return nil
}

// Log returns the process wide logger
func Log() *zap.SugaredLogger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

// SyncLogger flushes buffered entries; errors from syncing stdout are ignored.
func SyncLogger() {
	_ = Log().Sync()
}
