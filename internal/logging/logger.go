// Package logging wraps log/slog for the recall CLI: a colored console
// handler when writing to a terminal, JSON lines otherwise, and a logger
// carried in context.Context.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/clog/hooks"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/mattn/go-isatty"
)

// Format selects the log handler. The zero value picks one from the writer.
type Format int

const (
	FormatAuto Format = iota
	FormatConsole
	FormatJSON
)

var (
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	loggerMutex   sync.Mutex
)

func Default() *slog.Logger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	return defaultLogger
}

func SetDefault(logger *slog.Logger) {
	loggerMutex.Lock()
	defaultLogger = logger
	loggerMutex.Unlock()
}

// Quiet discards all log output.
func Quiet() {
	SetDefault(slog.New(slog.DiscardHandler))
}

func ErrAttr(err error) slog.Attr { return slog.Any("error", err) }

// DetectFormat returns FormatConsole when w is a terminal and FormatJSON
// otherwise, so piped or redirected output stays machine readable.
func DetectFormat(w io.Writer) Format {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return FormatConsole
	}
	return FormatJSON
}

// New builds a logger writing to w. Attributes tagged or prefixed "secret"
// are masked in both formats. With stacktrace unset, goerr errors are logged
// as their message plus values.
func New(w io.Writer, level slog.Level, format Format, stacktrace bool) *slog.Logger {
	if format == FormatAuto {
		format = DetectFormat(w)
	}

	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldPrefix("secret_"),
	)

	switch format {
	case FormatConsole:
		attrHook := hooks.GoErr()
		if !stacktrace {
			attrHook = goerrValues
		}
		return slog.New(clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithAttrHook(attrHook),
			clog.WithColorMap(consoleColors),
		))

	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: filter,
		}))

	default:
		panic(fmt.Sprintf("unsupported log format: %d", format))
	}
}

var consoleColors = &clog.ColorMap{
	Level: map[slog.Level]*color.Color{
		slog.LevelDebug: color.New(color.FgGreen, color.Bold),
		slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
		slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
		slog.LevelError: color.New(color.FgRed, color.Bold),
	},
	LevelDefault: color.New(color.FgBlue, color.Bold),
	Time:         color.New(color.FgWhite),
	Message:      color.New(color.FgHiWhite),
	AttrKey:      color.New(color.FgHiCyan),
	AttrValue:    color.New(color.FgHiWhite),
}

// goerrValues flattens a *goerr.Error into its values and message.
func goerrValues(_ []string, attr slog.Attr) *clog.HandleAttr {
	goErr, ok := attr.Value.Any().(*goerr.Error)
	if !ok {
		return nil
	}

	var attrs []any
	for k, v := range goErr.Values() {
		attrs = append(attrs, slog.Any(k, v))
	}
	attrs = append(attrs, slog.String("cause", goErr.Error()))
	group := slog.Group(attr.Key, attrs...)
	return &clog.HandleAttr{NewAttr: &group}
}
