package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
)

// Setup installs the process-wide slog handler. Library code logs through
// the default logger, so this must run before any pipeline work starts.
func Setup(out io.Writer, format string, levelName string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return fmt.Errorf("could not parse log level: %v", err)
	}

	options := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}

	var handler slog.Handler
	switch format {
	case JSON:
		handler = slog.NewJSONHandler(out, &options)
	case Text:
		handler = slog.NewTextHandler(out, &options)
	case Tint:
		handler = tint.NewHandler(out, &tint.Options{
			AddSource: options.AddSource,
			Level:     options.Level,
		})
	default:
		return fmt.Errorf("unknown logging format: %s", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
