package logger

import (
	"log"
	"sync"

	"go.uber.org/zap"

	"baartal/internal/config"
)

var (
	global *zap.Logger
	once   sync.Once
)

// Init builds the application logger. Production mode emits JSON,
// development mode emits console output with colored levels.
func Init() *zap.Logger {
	once.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if config.IsProduction() {
			l, err = zap.NewProduction()
		} else {
			l, err = zap.NewDevelopment()
		}
		if err != nil {
			log.Fatalf("logger init: %v", err)
		}
		global = l
	})
	return global
}

// Get returns the process logger, initializing it on first use.
func Get() *zap.Logger {
	if global == nil {
		return Init()
	}
	return global
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
