package service

import (
	"context"
	"net/http"
	"time"

	"tvp-scraper/domain"
)

// FeedFetcher retrieves one raw feed document over HTTP.
type FeedFetcher interface {
	// Fetch issues a single GET and returns the response status code and
	// raw body. The status code is not validated; callers decide.
	Fetch(ctx context.Context, url string) (int, []byte, error)
}

// RecordParser converts one feed document into normalized program records.
type RecordParser interface {
	Parse(ctx context.Context, feed []byte) (domain.Dataset, error)
}

// SheetSyncer replaces the published range of the spreadsheet with a
// dataset and returns the committed dataset as read back from the sheet.
type SheetSyncer interface {
	Sync(ctx context.Context, dataset domain.Dataset) (domain.Dataset, error)
}

// SnapshotWriter serializes a committed dataset to the dated snapshot file
// and returns the path written.
type SnapshotWriter interface {
	Write(ctx context.Context, dataset domain.Dataset, runDate time.Time) (string, error)
}

// Notifier composes and sends the run notification e-mail with the
// snapshot file and run log attached.
type Notifier interface {
	Notify(ctx context.Context, snapshotPath, logPath string, runDate time.Time) error
}

// HTTPGetter is the injected HTTP dependency of the feed fetcher.
type HTTPGetter interface {
	Do(req *http.Request) (*http.Response, error)
}

// SheetClient is the injected spreadsheet driver. Ranges are A1-notation
// without the worksheet prefix; the driver owns worksheet addressing.
type SheetClient interface {
	// ColumnValues returns the values of one column from startRow down,
	// one string per row, empty cells included as empty strings.
	ColumnValues(ctx context.Context, column string, startRow int) ([]string, error)

	// ClearRange clears all values in the given range.
	ClearRange(ctx context.Context, rng string) error

	// UpdateRows writes rows starting at startRow, one batched call.
	UpdateRows(ctx context.Context, startRow int, rows [][]string) error

	// ReadRange returns the values currently in the given range.
	ReadRange(ctx context.Context, rng string) ([][]string, error)
}

// MailSender is the injected mail transport.
type MailSender interface {
	Send(ctx context.Context, msg domain.Email) error
}
