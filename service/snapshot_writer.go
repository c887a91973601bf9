package service

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"tvp-scraper/domain"
)

// snapshotWriterService implementation.
type snapshotWriterService struct {
	logger *slog.Logger
	dir    string
}

// NewSnapshotWriter creates a snapshot writer targeting dir.
func NewSnapshotWriter(dir string, logger *slog.Logger) SnapshotWriter {
	return &snapshotWriterService{
		logger: logger,
		dir:    dir,
	}
}

// Write serializes the committed dataset to the dated snapshot file:
// UTF-16 little-endian with BOM, fields joined by tabs, one record per
// line. A prior same-day file is deleted first; same-day reruns overwrite.
func (s *snapshotWriterService) Write(ctx context.Context, dataset domain.Dataset, runDate time.Time) (string, error) {
	name := domain.SnapshotPrefix + runDate.Format("20060102") + ".txt"
	path := filepath.Join(s.dir, name)

	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("failed to remove existing snapshot %s: %w", path, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot %s: %w", path, err)
	}
	defer file.Close()

	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded := transform.NewWriter(file, encoder)
	writer := bufio.NewWriter(encoded)

	for _, record := range dataset {
		if _, err := writer.WriteString(strings.Join(record.Row(), "\t") + "\n"); err != nil {
			return "", fmt.Errorf("failed to write snapshot %s: %w", path, err)
		}
	}

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush snapshot %s: %w", path, err)
	}

	if err := encoded.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize snapshot %s: %w", path, err)
	}

	s.logger.Info("Data saved", "path", path, "rows", len(dataset))

	return path, nil
}
