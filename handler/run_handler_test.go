package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvp-scraper/domain"
)

func testLoggerHandler() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

type fakeURLSource struct {
	urls []string
	err  error
}

func (f *fakeURLSource) ColumnValues(ctx context.Context, column string, startRow int) ([]string, error) {
	return f.urls, f.err
}

func (f *fakeURLSource) ClearRange(ctx context.Context, rng string) error { return nil }

func (f *fakeURLSource) UpdateRows(ctx context.Context, startRow int, rows [][]string) error {
	return nil
}

func (f *fakeURLSource) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	return nil, nil
}

type fakeFetcher struct {
	fetched []string
	err     error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (int, []byte, error) {
	if f.err != nil {
		return 0, nil, f.err
	}
	f.fetched = append(f.fetched, url)
	return 200, []byte(url), nil
}

type fakeParser struct {
	err error
}

// Parse emits one record per feed titled with the feed body, preserving
// accumulation order for assertions.
func (f *fakeParser) Parse(ctx context.Context, feed []byte) (domain.Dataset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return domain.Dataset{{Title: string(feed)}}, nil
}

type fakeSyncer struct {
	got       domain.Dataset
	committed domain.Dataset
	err       error
	calls     int
}

func (f *fakeSyncer) Sync(ctx context.Context, dataset domain.Dataset) (domain.Dataset, error) {
	f.calls++
	f.got = dataset
	if f.err != nil {
		return nil, f.err
	}
	if f.committed != nil {
		return f.committed, nil
	}
	return dataset, nil
}

type fakeWriter struct {
	got   domain.Dataset
	path  string
	err   error
	calls int
}

func (f *fakeWriter) Write(ctx context.Context, dataset domain.Dataset, runDate time.Time) (string, error) {
	f.calls++
	f.got = dataset
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

type fakeNotifier struct {
	snapshotPath string
	logPath      string
	err          error
	calls        int
}

func (f *fakeNotifier) Notify(ctx context.Context, snapshotPath, logPath string, runDate time.Time) error {
	f.calls++
	f.snapshotPath = snapshotPath
	f.logPath = logPath
	return f.err
}

func TestRunHandler_Run(t *testing.T) {
	runDate := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	newHandler := func(sheet *fakeURLSource, fetcher *fakeFetcher, parser *fakeParser, syncer *fakeSyncer, writer *fakeWriter, notifier *fakeNotifier) RunHandler {
		return NewRunHandler(testLoggerHandler(), sheet, fetcher, parser, syncer, writer, notifier, "/out/run.log")
	}

	t.Run("should skip empty URL entries", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		handler := newHandler(
			&fakeURLSource{urls: []string{"", "http://a", "http://b"}},
			fetcher, &fakeParser{}, &fakeSyncer{}, &fakeWriter{path: "/out/snap.txt"}, &fakeNotifier{},
		)

		err := handler.Run(context.Background(), runDate)

		require.NoError(t, err)
		assert.Equal(t, []string{"http://a", "http://b"}, fetcher.fetched)
	})

	t.Run("should accumulate rows in URL-list order", func(t *testing.T) {
		syncer := &fakeSyncer{}
		handler := newHandler(
			&fakeURLSource{urls: []string{"http://a", "http://b"}},
			&fakeFetcher{}, &fakeParser{}, syncer, &fakeWriter{path: "/out/snap.txt"}, &fakeNotifier{},
		)

		err := handler.Run(context.Background(), runDate)

		require.NoError(t, err)
		require.Len(t, syncer.got, 2)
		assert.Equal(t, "http://a", syncer.got[0].Title)
		assert.Equal(t, "http://b", syncer.got[1].Title)
	})

	t.Run("should snapshot the committed dataset, not the accumulator", func(t *testing.T) {
		committed := domain.Dataset{{Title: "as stored remotely"}}
		writer := &fakeWriter{path: "/out/snap.txt"}
		handler := newHandler(
			&fakeURLSource{urls: []string{"http://a"}},
			&fakeFetcher{}, &fakeParser{}, &fakeSyncer{committed: committed}, writer, &fakeNotifier{},
		)

		err := handler.Run(context.Background(), runDate)

		require.NoError(t, err)
		assert.Equal(t, committed, writer.got)
	})

	t.Run("should notify with the snapshot path and the run log path", func(t *testing.T) {
		notifier := &fakeNotifier{}
		handler := newHandler(
			&fakeURLSource{urls: []string{"http://a"}},
			&fakeFetcher{}, &fakeParser{}, &fakeSyncer{}, &fakeWriter{path: "/out/snap.txt"}, notifier,
		)

		err := handler.Run(context.Background(), runDate)

		require.NoError(t, err)
		assert.Equal(t, 1, notifier.calls)
		assert.Equal(t, "/out/snap.txt", notifier.snapshotPath)
		assert.Equal(t, "/out/run.log", notifier.logPath)
	})

	t.Run("should abort before syncing when a fetch fails", func(t *testing.T) {
		syncer := &fakeSyncer{}
		writer := &fakeWriter{}
		notifier := &fakeNotifier{}
		handler := newHandler(
			&fakeURLSource{urls: []string{"http://a"}},
			&fakeFetcher{err: fmt.Errorf("%w: timeout", domain.ErrFeedUnavailable)},
			&fakeParser{}, syncer, writer, notifier,
		)

		err := handler.Run(context.Background(), runDate)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrFeedUnavailable)
		assert.Zero(t, syncer.calls)
		assert.Zero(t, writer.calls)
		assert.Zero(t, notifier.calls)
	})

	t.Run("should abort before syncing when a parse fails", func(t *testing.T) {
		syncer := &fakeSyncer{}
		handler := newHandler(
			&fakeURLSource{urls: []string{"http://a"}},
			&fakeFetcher{}, &fakeParser{err: domain.ErrTitleMissing}, syncer, &fakeWriter{}, &fakeNotifier{},
		)

		err := handler.Run(context.Background(), runDate)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTitleMissing)
		assert.Zero(t, syncer.calls)
	})

	t.Run("should abort before writing when the sync fails", func(t *testing.T) {
		writer := &fakeWriter{}
		notifier := &fakeNotifier{}
		handler := newHandler(
			&fakeURLSource{urls: []string{"http://a"}},
			&fakeFetcher{}, &fakeParser{}, &fakeSyncer{err: domain.ErrSheetUnavailable}, writer, notifier,
		)

		err := handler.Run(context.Background(), runDate)

		require.Error(t, err)
		assert.Zero(t, writer.calls)
		assert.Zero(t, notifier.calls)
	})

	t.Run("should fail when the URL list cannot be read", func(t *testing.T) {
		handler := newHandler(
			&fakeURLSource{err: errors.New("range unavailable")},
			&fakeFetcher{}, &fakeParser{}, &fakeSyncer{}, &fakeWriter{}, &fakeNotifier{},
		)

		err := handler.Run(context.Background(), runDate)

		require.Error(t, err)
	})

	t.Run("should run the downstream steps even with no source URLs", func(t *testing.T) {
		syncer := &fakeSyncer{}
		notifier := &fakeNotifier{}
		handler := newHandler(
			&fakeURLSource{},
			&fakeFetcher{}, &fakeParser{}, syncer, &fakeWriter{path: "/out/snap.txt"}, notifier,
		)

		err := handler.Run(context.Background(), runDate)

		require.NoError(t, err)
		assert.Equal(t, 1, syncer.calls)
		assert.Equal(t, 1, notifier.calls)
		assert.Empty(t, syncer.got)
	})
}
