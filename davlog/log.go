// Package davlog gives every package in this module the same leveled,
// subject-keyed logging call shape: Debugf/Infof/Warnf/Errorf(subject,
// format, args...), backed by github.com/rs/zerolog.
package davlog

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the leveled logging surface every operation in this module
// writes through. The zero value is not usable; use Default() or New().
type Logger struct {
	zl zerolog.Logger
}

var std = New(os.Stderr)

// Default returns the process-wide logger used when a DavResource is
// constructed without an explicit one, or for package-level diagnostics
// that have no resource handle to log against.
func Default() Logger { return std }

// New builds a Logger writing to w.
func New(w io.Writer) Logger {
	return Logger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

func subjectStr(subject any) string {
	if subject == nil {
		return ""
	}
	if s, ok := subject.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", subject)
}

func (l Logger) Debugf(subject any, format string, args ...any) {
	l.zl.Debug().Str("subject", subjectStr(subject)).Msg(fmt.Sprintf(format, args...))
}

func (l Logger) Infof(subject any, format string, args ...any) {
	l.zl.Info().Str("subject", subjectStr(subject)).Msg(fmt.Sprintf(format, args...))
}

func (l Logger) Warnf(subject any, format string, args ...any) {
	l.zl.Warn().Str("subject", subjectStr(subject)).Msg(fmt.Sprintf(format, args...))
}

func (l Logger) Errorf(subject any, format string, args ...any) {
	l.zl.Error().Str("subject", subjectStr(subject)).Msg(fmt.Sprintf(format, args...))
}
