// Package logger provides a small leveled key/value logger with text and
// JSON output.
package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type stdLogger struct {
	mu     *sync.Mutex
	std    *log.Logger
	level  Level
	format Format
	base   map[string]any
}

type Options struct {
	Level  Level
	Format Format
	App    string
}

func New(opts Options) Logger {
	base := map[string]any{}
	if app := strings.TrimSpace(opts.App); app != "" {
		base["app"] = app
	}
	format := opts.Format
	if format == "" {
		format = FormatText
	}
	return &stdLogger{
		mu:     &sync.Mutex{},
		std:    log.New(os.Stdout, "", 0),
		level:  opts.Level,
		format: format,
		base:   base,
	}
}

// NewFromEnv builds a logger from LOG_LEVEL, LOG_FORMAT and APP_NAME.
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

func (l *stdLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.base)+len(fields))
	for k, v := range l.base {
		merged[k] = v
	}
	for k, v := range fields {
		if strings.TrimSpace(k) != "" {
			merged[k] = v
		}
	}
	return &stdLogger{mu: l.mu, std: l.std, level: l.level, format: l.format, base: merged}
}

func (l *stdLogger) Debug(msg string, fields map[string]any) { l.log(Debug, msg, fields) }
func (l *stdLogger) Info(msg string, fields map[string]any)  { l.log(Info, msg, fields) }
func (l *stdLogger) Warn(msg string, fields map[string]any)  { l.log(Warn, msg, fields) }
func (l *stdLogger) Error(msg string, fields map[string]any) { l.log(Error, msg, fields) }

func (l *stdLogger) log(lvl Level, msg string, fields map[string]any) {
	if lvl < l.level {
		return
	}

	entry := map[string]any{
		"ts":    time.Now().Format(time.RFC3339Nano),
		"level": lvl.String(),
		"msg":   msg,
	}
	for k, v := range l.base {
		entry[k] = v
	}
	for k, v := range fields {
		if strings.TrimSpace(k) != "" {
			entry[k] = v
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.format == FormatJSON {
		b, _ := json.Marshal(entry)
		l.std.Println(string(b))
		return
	}
	l.std.Println(formatText(entry))
}

// formatText renders keys sorted for stable output.
func formatText(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(parts, " ")
}
