package bower

import (
	"io"

	"github.com/charmbracelet/log"
)

// newDiscardLogger returns the logger a scene starts with. It writes nowhere
// until replaced with SetLogger.
func newDiscardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Prefix: "bower"})
}

// NewLogger returns a logger that writes to w with bower's prefix and
// timestamps, at the given level.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "bower",
		Level:           level,
		ReportTimestamp: true,
	})
}

// ParseLogLevel maps "debug", "info", "warn", "error" and "fatal" to a
// level. An empty string is info.
func ParseLogLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, &UnsupportedFormatError{Kind: "log level", Input: s}
	}
	return lvl, nil
}
