package common

import (
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

var (
	globalLogger arbor.ILogger
	loggerMutex  sync.RWMutex
)

// GetLogger returns the process-wide logger. If SetupLogger hasn't run yet
// (e.g. in a test), it falls back to a console-only logger rather than
// panicking.
func GetLogger() arbor.ILogger {
	loggerMutex.RLock()
	if globalLogger != nil {
		loggerMutex.RUnlock()
		return globalLogger
	}
	loggerMutex.RUnlock()
	return arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{Type: models.LogWriterTypeConsole})
}

// SetupLogger builds the process-wide logger from config and installs it as
// the global instance returned by GetLogger.
func SetupLogger(cfg LoggingConfig) arbor.ILogger {
	logger := arbor.NewLogger()

	hasFile, hasConsole := false, false
	for _, out := range cfg.Output {
		switch out {
		case "file":
			hasFile = true
		case "stdout", "console":
			hasConsole = true
		}
	}
	if hasFile {
		logger = logger.WithFileWriter(models.WriterConfiguration{
			Type:     models.LogWriterTypeFile,
			FileName: "esg-pipeline.log",
		})
	}
	if hasConsole || !hasFile {
		logger = logger.WithConsoleWriter(models.WriterConfiguration{Type: models.LogWriterTypeConsole})
	}

	logger = logger.WithLevelFromString(cfg.Level)

	loggerMutex.Lock()
	globalLogger = logger
	loggerMutex.Unlock()
	return logger
}
