package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fatih/color"
)

// Logger is a small leveled console logger. Each subsystem creates its
// own instance so log lines carry the subsystem name.
type Logger struct {
	name string
}

func New(name string) *Logger {
	return &Logger{name: name}
}

func (l *Logger) format(level, msg string) string {
	_, file, line, _ := runtime.Caller(2)
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	return fmt.Sprintf("%s | %s | %s:%d | %s | %s",
		timestamp,
		level,
		filepath.Base(file),
		line,
		l.name,
		msg,
	)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	color.Cyan(l.format("INFO", fmt.Sprintf(msg, args...)))
}

func (l *Logger) Success(msg string, args ...interface{}) {
	color.Green(l.format("SUCCESS", fmt.Sprintf(msg, args...)))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	color.Yellow(l.format("WARN", fmt.Sprintf(msg, args...)))
}

// Error logs the message and returns it wrapped around err so callers
// can log and propagate in one statement.
func (l *Logger) Error(msg string, err error, args ...interface{}) error {
	args = append(args, err)
	color.Red(l.format("ERROR", fmt.Sprintf(msg+": %v", args...)))
	return fmt.Errorf("%s: %w", msg, err)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	color.Magenta(l.format("DEBUG", fmt.Sprintf(msg, args...)))
}
