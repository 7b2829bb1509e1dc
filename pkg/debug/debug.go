// Package debug builds the command line logger: a console writer with a
// millisecond timestamp and the calling package:file:line on every event.
package debug

import (
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

const defaultTimeFormat = "2006-01-02T15:04:05.0000Z"

// NewLogger writes human readable events to w. Every event carries a run id
// so interleaved invocations can be told apart.
func NewLogger(w io.Writer, level zerolog.Level, colorize bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: !colorize}).
		Level(level).
		With().
		Str("service", "tmplsem").
		Str("run", xid.New().String()).
		Logger().
		Hook(TimeHook{}).
		Hook(CallerHook{WithColor: colorize})
}

type TimeHook struct {
	Format string
}

func (t TimeHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	format := t.Format
	if format == "" {
		format = defaultTimeFormat
	}
	e.Str("time", time.Now().Format(format))
}

type CallerHook struct {
	WithColor bool
}

// Run skips the hook, msg and Msg frames plus whatever CallerSkipFrame asked for.
func (c CallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	pc, file, line, ok := runtime.Caller(skipFrames(e) + 3)
	if !ok {
		return
	}

	pkg, _ := SplitFuncName(runtime.FuncForPC(pc).Name())
	e.Str("caller", FormatCaller(pkg, file, line, c.WithColor))
}

// skipFrames reads the event's unexported skipFrame counter.
func skipFrames(e *zerolog.Event) int {
	field := reflect.ValueOf(e).Elem().FieldByName("skipFrame")
	if !field.IsValid() {
		return 0
	}
	return int(field.Int())
}

// SplitFuncName splits a runtime function name into its package path and the
// function, keeping the receiver with the function:
//
//	github.com/a/b.(*T).M  ->  github.com/a/b, (*T).M
func SplitFuncName(name string) (pkg, function string) {
	lastSlash := max(strings.LastIndexByte(name, '/'), 0)

	dot := strings.IndexByte(name[lastSlash:], '.')
	if dot < 0 {
		return name, ""
	}
	dot += lastSlash

	return name[:dot], name[dot+1:]
}

func FormatCaller(pkg, path string, line int, colorize bool) string {
	file := filepath.Base(path)
	if !colorize {
		return fmt.Sprintf("%s:%s:%d", pkg, file, line)
	}

	sep := color.New(color.Faint).Sprint(":")
	return pkg + sep + color.New(color.Bold).Sprint(file) + sep + color.New(color.FgHiRed, color.Bold).Sprintf("%d", line)
}
