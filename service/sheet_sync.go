package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tvp-scraper/config"
	"tvp-scraper/domain"
	"tvp-scraper/retry"
)

// sheetSyncService implementation.
type sheetSyncService struct {
	logger *slog.Logger
	client SheetClient
	policy *retry.Policy
}

// NewSheetSyncer creates a sheet synchronizer over the given driver.
func NewSheetSyncer(cfg *config.Config, logger *slog.Logger, client SheetClient) SheetSyncer {
	classifier := func(err error) bool {
		return errors.Is(err, domain.ErrSheetUnavailable)
	}

	return &sheetSyncService{
		logger: logger,
		client: client,
		policy: retry.NewPolicy(cfg.Retry.MaxAttempts, cfg.Retry.Delay, classifier, logger),
	}
}

// dataRange is the published range: columns A through H, row 2 downward.
func dataRange() string {
	return fmt.Sprintf("%s%d:%s", domain.FirstColumn, domain.FirstDataRow, domain.LastColumn)
}

// Sync clears the published range, writes the dataset in one batched
// update, then reads the range back as the committed dataset. The
// clear-then-write order guarantees rows beyond the new dataset's length
// are gone. Remote API failures are retried as a whole.
func (s *sheetSyncService) Sync(ctx context.Context, dataset domain.Dataset) (domain.Dataset, error) {
	var committed [][]string

	err := s.policy.Do(ctx, "sheet update", func() error {
		if err := s.client.ClearRange(ctx, dataRange()); err != nil {
			return err
		}

		if err := s.client.UpdateRows(ctx, domain.FirstDataRow, dataset.Rows()); err != nil {
			return err
		}

		rows, err := s.client.ReadRange(ctx, dataRange())
		if err != nil {
			return err
		}

		committed = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sheet updated successfully", "rows", len(committed))

	// The remote store omits trailing empty cells on read; DatasetFromRows
	// pads every committed row back to the fixed width.
	return domain.DatasetFromRows(committed), nil
}
