package common

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	loggerOnce sync.Once
	logger     *log.Logger
)

// Logger returns the process logger, created on first use.
func Logger() *log.Logger {
	loggerOnce.Do(func() {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
			Prefix:          "spatialasset",
		})
		logger.SetLevel(log.InfoLevel)
	})
	return logger
}

// SetDebug switches debug logging on or off.
func SetDebug(enabled bool) {
	if enabled {
		Logger().SetLevel(log.DebugLevel)
		return
	}
	Logger().SetLevel(log.InfoLevel)
}

func LogDebug(msg string, args ...interface{}) {
	Logger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	Logger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	Logger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	Logger().Errorf(msg, args...)
}
