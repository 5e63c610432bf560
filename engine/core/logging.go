package core

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	if singleton == nil {
		once.Do(
			func() {
				l := log.NewWithOptions(os.Stderr, log.Options{
					ReportCaller:    true,
					ReportTimestamp: true,
					TimeFormat:      time.RFC3339,
					Prefix:          "brdfview",
				})
				l.SetLevel(log.InfoLevel)
				singleton = &logger{l}
			})
	}
	return singleton
}

// SetDebug lowers the log level to debug for verbose per-resource tracing.
func SetDebug() {
	getLogger().SetLevel(log.DebugLevel)
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debug(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Info(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warn(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Error(msg, args...)
}

// LogFatal logs the diagnostic and terminates the process. This is the
// top-level handler for unrecoverable initialization and present failures.
func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatal(msg, args...)
}
