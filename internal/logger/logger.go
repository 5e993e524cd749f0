// Package logger настраивает корневой zerolog-логгер процесса.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Options настройки логгера
type Options struct {
	Level  string
	Format string // console или json
	Writer io.Writer
}

// Logger — тип логгера проекта
type Logger = zerolog.Logger

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Init настраивает корневой логгер; повторные вызовы игнорируются
func Init(opt Options) {
	once.Do(func() {
		root.Store(build(opt))
	})
}

// Get возвращает корневой логгер, при необходимости с настройками по умолчанию
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(Options{Level: "info", Format: "console"})
	return root.Load()
}

// For возвращает дочерний логгер с полем component
func For(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

func build(opt Options) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if strings.ToLower(opt.Format) != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp().Logger()
	return &l
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
