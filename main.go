package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"tvp-scraper/config"
	"tvp-scraper/driver"
	"tvp-scraper/handler"
	"tvp-scraper/logger"
	"tvp-scraper/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	runDate := time.Now()

	runLog, err := logger.Init(cfg.Output.Dir, cfg.Output.LogLevel, runDate)
	if err != nil {
		return fmt.Errorf("failed to initialize run log: %w", err)
	}
	defer runLog.Close()

	log := runLog.Logger.With("run_id", uuid.New().String())

	ctx := context.Background()

	sheet, err := driver.NewSheetsDriver(ctx, cfg)
	if err != nil {
		log.Error("Failed to connect to spreadsheet", "error", err)
		return err
	}

	h := handler.NewRunHandler(
		log,
		sheet,
		service.NewFeedFetcher(cfg, log),
		service.NewRecordParser(log),
		service.NewSheetSyncer(cfg, log, sheet),
		service.NewSnapshotWriter(cfg.Output.Dir, log),
		service.NewNotifier(cfg, log, driver.NewSMTPMailer(cfg)),
		runLog.Path,
	)

	log.Info("Starting scrape run", "date", runDate.Format("20060102"))

	if err := h.Run(ctx, runDate); err != nil {
		log.Error("Run aborted", "error", err)
		return err
	}

	return nil
}
