package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tvp-scraper/domain"
	"tvp-scraper/service"
)

// RunHandler drives one complete scrape run.
type RunHandler interface {
	Run(ctx context.Context, runDate time.Time) error
}

// runHandler implementation.
type runHandler struct {
	logger   *slog.Logger
	sheet    service.SheetClient
	fetcher  service.FeedFetcher
	parser   service.RecordParser
	syncer   service.SheetSyncer
	writer   service.SnapshotWriter
	notifier service.Notifier
	logPath  string
}

// NewRunHandler creates a run handler over the injected services. logPath
// is the current run log file, attached to the notification e-mail.
func NewRunHandler(
	logger *slog.Logger,
	sheet service.SheetClient,
	fetcher service.FeedFetcher,
	parser service.RecordParser,
	syncer service.SheetSyncer,
	writer service.SnapshotWriter,
	notifier service.Notifier,
	logPath string,
) RunHandler {
	return &runHandler{
		logger:   logger,
		sheet:    sheet,
		fetcher:  fetcher,
		parser:   parser,
		syncer:   syncer,
		writer:   writer,
		notifier: notifier,
		logPath:  logPath,
	}
}

// Run executes the pipeline once: read the source URL list, fetch and
// parse each non-empty URL in order, publish the accumulated dataset to
// the sheet, snapshot the committed dataset, notify. There is no per-URL
// isolation; the first unrecoverable failure aborts the run and steps
// after it never execute.
func (h *runHandler) Run(ctx context.Context, runDate time.Time) error {
	urls, err := h.sheet.ColumnValues(ctx, domain.URLColumn, domain.FirstDataRow)
	if err != nil {
		return fmt.Errorf("failed to read source URL list: %w", err)
	}

	h.logger.Info("Source URLs loaded", "count", len(urls))

	var dataset domain.Dataset
	for _, url := range urls {
		if url == "" {
			continue
		}

		_, body, err := h.fetcher.Fetch(ctx, url)
		if err != nil {
			return fmt.Errorf("failed to fetch feed %s: %w", url, err)
		}

		records, err := h.parser.Parse(ctx, body)
		if err != nil {
			return fmt.Errorf("failed to parse feed %s: %w", url, err)
		}

		dataset = append(dataset, records...)
	}

	committed, err := h.syncer.Sync(ctx, dataset)
	if err != nil {
		return fmt.Errorf("failed to synchronize sheet: %w", err)
	}

	snapshotPath, err := h.writer.Write(ctx, committed, runDate)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := h.notifier.Notify(ctx, snapshotPath, h.logPath, runDate); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	h.logger.Info("Run completed", "records", len(committed))

	return nil
}
