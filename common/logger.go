package common

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger configures the logger shared by all packages of the module.
// Nothing is logged by default. Passing nil restores the silent logger.
//
// Levels:
//   - debug: per level diagnostics of the skeleton builder
//   - info: run summaries
//   - error: failed builds, together with the input rings
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. It is never nil.
func Logger() *zap.Logger {
	return loggerPtr.Load()
}

// ZapRing renders a ring as a compact field.
func ZapRing(key string, ring []Vec2) zap.Field {
	return zap.Float64s(key, FlattenVec2(ring))
}
