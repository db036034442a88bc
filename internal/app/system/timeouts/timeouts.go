// Package timeouts holds the per-operation deadlines handlers put on store
// calls. Values are process-wide and set once from config at startup.
package timeouts

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults used until Configure is called.
const (
	DefaultRead   = 5 * time.Second
	DefaultWrite  = 10 * time.Second
	DefaultUpload = 30 * time.Second
)

var (
	mu     sync.RWMutex
	read   = DefaultRead
	write  = DefaultWrite
	upload = DefaultUpload
)

// Read bounds a single store query.
func Read() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return read
}

// Write bounds an insert, replace or delete, including the About
// deactivate-then-insert pair.
func Write() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return write
}

// Upload bounds storing an image and recording it on the project.
func Upload() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return upload
}

// Config holds timeout configuration values. Zero fields keep the current
// value.
type Config struct {
	Read   time.Duration
	Write  time.Duration
	Upload time.Duration
}

// Configure sets custom timeout values.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Read > 0 {
		read = cfg.Read
	}
	if cfg.Write > 0 {
		write = cfg.Write
	}
	if cfg.Upload > 0 {
		upload = cfg.Upload
	}
}

// Reset restores all timeouts to defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	read = DefaultRead
	write = DefaultWrite
	upload = DefaultUpload
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Read: read, Write: write, Upload: upload}
}

// WithTimeout creates a context with timeout. The returned cancel logs a
// warning when the operation ran out of time.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
