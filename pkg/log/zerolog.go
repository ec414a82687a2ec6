package log

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/statlearn/pkg/errors"
)

// CaptureWarnings routes library warnings (ConvergenceWarning,
// ConditioningWarning, ...) through a zerolog logger writing to w.
// Warnings that implement zerolog.LogObjectMarshaler are embedded as
// structured fields. The returned logger can be reused by the caller.
//
// This lives here rather than in pkg/errors to avoid an import cycle.
func CaptureWarnings(w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Str("component", "statlearn").Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(obj)
		}
		ev.Msg(warning.Error())
	})
	return logger
}

// ResetWarnings restores the default warning handler, detaching any logger
// previously installed by CaptureWarnings.
func ResetWarnings() {
	errors.SetZerologWarnFunc(nil)
}
