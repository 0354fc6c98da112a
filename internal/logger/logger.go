package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init installs the process logger. Package code logs through log/slog;
// the handler renders to stderr with the charmbracelet styling.
func Init(level string, noColor bool) {
	handler := log.NewWithOptions(io.MultiWriter(os.Stderr),
		log.Options{
			ReportCaller:    false,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "QUILL",
			Level:           parseLevel(level),
		})

	log.SetDefault(handler)
	slog.SetDefault(slog.New(handler))

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}
