// Run logging: one slog text logger writing both to stdout and to the
// per-date run log file. The log file is attached to the notification
// e-mail at the end of a run, so Init exposes its path.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tvp-scraper/domain"
)

// RunLog is an initialized run logger together with the backing log file.
type RunLog struct {
	Logger *slog.Logger
	Path   string

	file *os.File
}

// Init opens (or appends to) the run log file for the given run date in dir
// and returns a logger writing to it and to stdout. Same-day reruns append.
func Init(dir, level string, runDate time.Time) (*RunLog, error) {
	name := domain.RunLogPrefix + runDate.Format("20060102") + ".log"
	path := filepath.Join(dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log %s: %w", path, err)
	}

	handler := slog.NewTextHandler(io.MultiWriter(file, os.Stdout), &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return &RunLog{
		Logger: slog.New(handler),
		Path:   path,
		file:   file,
	}, nil
}

// Close flushes and closes the backing log file.
func (r *RunLog) Close() error {
	return r.file.Close()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
