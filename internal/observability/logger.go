package observability

import (
	"fmt"
	stdlog "log"
	"os"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

// Logger writes leveled key=value lines to stderr.
type Logger struct {
	out      *stdlog.Logger
	minLevel Level
}

func NewLogger() *Logger {
	return &Logger{
		out:      stdlog.New(os.Stderr, "", stdlog.LstdFlags|stdlog.Lmicroseconds),
		minLevel: LevelInfo,
	}
}

func (l *Logger) SetLevel(level Level) {
	l.minLevel = level
}

func (l *Logger) Debug(msg string, kv ...any) {
	l.write(LevelDebug, msg, kv...)
}

func (l *Logger) Info(msg string, kv ...any) {
	l.write(LevelInfo, msg, kv...)
}

func (l *Logger) Error(msg string, err error, kv ...any) {
	extended := append([]any{"err", err}, kv...)
	l.write(LevelError, msg, extended...)
}

func (l *Logger) write(level Level, msg string, kv ...any) {
	if !l.enabled(level) {
		return
	}
	line := "[" + string(level) + "] " + msg + formatKVs(kv...)
	l.out.Println(line)
}

func (l *Logger) enabled(level Level) bool {
	switch l.minLevel {
	case LevelDebug:
		return true
	case LevelInfo:
		return level == LevelInfo || level == LevelError
	case LevelError:
		return level == LevelError
	default:
		return true
	}
}

func formatKVs(kv ...any) string {
	out := ""
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		out += " " + key + "=" + fmt.Sprint(kv[i+1])
	}
	return out
}
