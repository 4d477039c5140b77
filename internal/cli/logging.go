package cli

import (
	"io"
	"os"
	"strings"

	"github.com/GabrielNunesIT/go-libs/logger"
)

// SetupLogging creates a stderr logger with the specified level, so stdout
// stays reserved for parsed records.
func SetupLogging(level string) logger.ILogger {
	return setupLogging(os.Stderr, level)
}

func setupLogging(w io.Writer, level string) logger.ILogger {
	log := logger.NewConsoleLogger(w)

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		log.SetLevel(logger.LevelTrace)
	case "debug":
		log.SetLevel(logger.LevelDebug)
	case "warn", "warning":
		log.SetLevel(logger.LevelWarning)
	case "error":
		log.SetLevel(logger.LevelError)
	default:
		log.SetLevel(logger.LevelInfo)
	}

	logger.SetDefaultLogger(log)
	logger.SetCtxFallbackLogger(log)

	return log
}
