// The package logger defines a leveled logger with INFO, WARN and ERROR prints.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// ParseLevel() returns the level with the given name (info, warn or error), ignoring case.
// An empty name is LevelInfo.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}

// Aggregate writes the prints at or above its level, each prefixed by the name of its level.
type Aggregate struct {
	level  Level
	prints [3]*log.Logger
}

// New() returns a logger that writes every print to out.
func New(out io.Writer) *Aggregate {
	return NewWithLevel(out, LevelInfo)
}

// NewWithLevel() returns a logger that writes to out the prints at or above level.
func NewWithLevel(out io.Writer, level Level) *Aggregate {
	return &Aggregate{
		level: level,
		prints: [3]*log.Logger{
			LevelInfo:  log.New(out, "INFO: ", log.LstdFlags),
			LevelWarn:  log.New(out, "WARN: ", log.LstdFlags),
			LevelError: log.New(out, "ERROR: ", log.LstdFlags),
		},
	}
}

func (l *Aggregate) Info(format string, v ...interface{}) {
	l.print(LevelInfo, format, v...)
}

func (l *Aggregate) Warn(format string, v ...interface{}) {
	l.print(LevelWarn, format, v...)
}

func (l *Aggregate) Error(format string, v ...interface{}) {
	l.print(LevelError, format, v...)
}

func (l *Aggregate) print(level Level, format string, v ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	l.prints[level].Printf(format, v...)
}

// Init() returns a logger that prints to stderr if filePath is empty, or that
// appends to the file at filePath otherwise. The file must be closed by the caller.
// Stdout is left to the results.
func Init(filePath string, level Level) (*Aggregate, *os.File, error) {
	if filePath == "" {
		return NewWithLevel(os.Stderr, level), nil, nil
	}

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open the log file: %w", err)
	}

	return NewWithLevel(file, level), file, nil
}

//---------------------------------ERROR-CODES---------------------------------

var ErrUnknownLevel = errors.New("unknown log level")
