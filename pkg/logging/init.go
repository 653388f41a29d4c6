package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
)

// Initialize installs the default slog logger writing to w. Source locations
// are only added at debug level.
func Initialize(w io.Writer, loggingType string, logLevelName string) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(strings.TrimSpace(logLevelName)))
	if err != nil {
		return fmt.Errorf("could not parse log level: %w", err)
	}

	handler, err := newHandler(w, loggingType, logLevel)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))
	slog.Debug("logging initialized", "type", loggingType, "logLevel", logLevel)
	return nil
}

func newHandler(w io.Writer, loggingType string, level slog.Level) (slog.Handler, error) {
	addSource := level <= slog.LevelDebug

	switch strings.ToLower(loggingType) {
	case JSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: addSource, Level: level}), nil
	case Text:
		return slog.NewTextHandler(w, &slog.HandlerOptions{AddSource: addSource, Level: level}), nil
	case Tint:
		return tint.NewHandler(w, &tint.Options{
			AddSource:  addSource,
			Level:      level,
			TimeFormat: "15:04:05",
		}), nil
	default:
		return nil, fmt.Errorf("unknown logging type: %s", loggingType)
	}
}
