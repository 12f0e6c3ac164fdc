package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/term"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatAuto    LogFormat = "auto"
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

func ParseLogFormat(s string) (LogFormat, error) {
	switch f := LogFormat(strings.ToLower(s)); f {
	case LogFormatAuto, LogFormatConsole, LogFormatJSON:
		return f, nil
	case "":
		return LogFormatAuto, nil
	default:
		return "", goerr.New("invalid log format", goerr.V("format", s))
	}
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, goerr.New("invalid log level", goerr.V("level", s))
	}
}

// NewLogger builds a logger writing to w. Auto uses the console handler when
// w is a terminal and JSON otherwise.
func NewLogger(level slog.Level, w io.Writer, format LogFormat) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	if format == LogFormatAuto {
		format = LogFormatJSON
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = LogFormatConsole
		}
	}

	var handler slog.Handler
	switch format {
	case LogFormatConsole:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithTimeFmt("15:04:05"),
			clog.WithSource(false),
			clog.WithAttrHook(clog.GoerrHook),
		)
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}
