// Package logging builds the leveled loggers the commands share. Messages
// follow a "LEVEL msg key=value" convention; the level token on each line
// drives filtering.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var tokens = map[string]Level{
	"DEBUG": LevelDebug,
	"INFO":  LevelInfo,
	"WARN":  LevelWarn,
	"ERROR": LevelError,
}

// LevelWriter drops whole lines whose level token is below Min. A line with
// no recognizable token is treated as INFO.
type LevelWriter struct {
	Out io.Writer
	Min Level
}

func (w *LevelWriter) Write(p []byte) (int, error) {
	if lineLevel(p) < w.Min {
		return len(p), nil
	}
	return w.Out.Write(p)
}

func lineLevel(p []byte) Level {
	// The token is the first field after the stdlib timestamp prefix; scan
	// a few fields so prefix changes do not break filtering.
	fields := bytes.Fields(p)
	for i, f := range fields {
		if i > 3 {
			break
		}
		if lvl, ok := tokens[string(f)]; ok {
			return lvl
		}
	}
	return LevelInfo
}

// New returns a logger that writes lines at or above min to every out.
func New(min Level, outs ...io.Writer) *log.Logger {
	var w io.Writer
	switch len(outs) {
	case 0:
		w = io.Discard
	case 1:
		w = outs[0]
	default:
		w = io.MultiWriter(outs...)
	}
	return log.New(&LevelWriter{Out: w, Min: min}, "", log.LstdFlags)
}

// Open builds the command logger from the configured level and log file.
// quiet silences everything; verbose lowers the threshold to debug. The
// returned closer is nil when no file is open.
func Open(level, file string, quiet, verbose bool) (*log.Logger, io.Closer, error) {
	if quiet {
		return log.New(io.Discard, "", 0), nil, nil
	}

	min := ParseLevel(level)
	if verbose {
		min = LevelDebug
	}

	outs := []io.Writer{os.Stderr}
	var closer io.Closer
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		outs = append(outs, f)
		closer = f
	}
	return New(min, outs...), closer, nil
}
