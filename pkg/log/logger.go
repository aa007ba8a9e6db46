package log

import (
	"fmt"
	"io"
	"os"

	scierrors "github.com/YuminosukeSato/scifeat/pkg/errors"
	"github.com/rs/zerolog"
)

// SetupLogger installs a JSON zerolog provider writing to stdout as the global
// provider and routes library warnings (errors.Warn) through it.
// Field names follow the Cloud Logging structured format.
func SetupLogger(loglevel string) error {
	return SetupLoggerWithWriter(os.Stdout, loglevel)
}

// SetupLoggerWithWriter is SetupLogger with an explicit destination.
func SetupLoggerWithWriter(w io.Writer, loglevel string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}

	zerolog.LevelFieldName = "severity"
	zerolog.MessageFieldName = "message"

	provider := NewZerologProvider(w, level)
	SetProvider(provider)

	warnLogger := provider.GetLoggerWithName("warnings")
	scierrors.SetZerologWarnFunc(func(warning error) {
		warnLogger.Warn(warning.Error(), "warning", warning)
	})
	return nil
}

// ToLogLevel parses a level name.
func ToLogLevel(level string) (Level, error) {
	switch level {
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %q", level)
	}
}
