package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"tvp-scraper/config"
	"tvp-scraper/domain"
	"tvp-scraper/retry"
)

// feedFetcherService implementation.
type feedFetcherService struct {
	logger *slog.Logger
	client HTTPGetter
	policy *retry.Policy
}

// NewFeedFetcher creates a feed fetcher using an HTTP client built from
// config. A zero timeout leaves the client on transport defaults.
func NewFeedFetcher(cfg *config.Config, logger *slog.Logger) FeedFetcher {
	client := &http.Client{Timeout: cfg.HTTP.Timeout}
	return NewFeedFetcherWithClient(cfg, logger, client)
}

// NewFeedFetcherWithClient creates a feed fetcher with a custom HTTP client.
func NewFeedFetcherWithClient(cfg *config.Config, logger *slog.Logger, client HTTPGetter) FeedFetcher {
	classifier := func(err error) bool {
		return errors.Is(err, domain.ErrFeedUnavailable)
	}

	return &feedFetcherService{
		logger: logger,
		client: client,
		policy: retry.NewPolicy(cfg.Retry.MaxAttempts, cfg.Retry.Delay, classifier, logger),
	}
}

// Fetch issues a single GET per attempt and returns the raw response
// without validating the status code. Transport failures are retried;
// request-construction failures are not.
func (s *feedFetcherService) Fetch(ctx context.Context, url string) (int, []byte, error) {
	var (
		status int
		body   []byte
	)

	err := s.policy.Do(ctx, "feed fetch", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidSourceURL, url, err)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrFeedUnavailable, url, err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrFeedUnavailable, url, err)
		}

		status = resp.StatusCode
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	s.logger.Info("Processing URL", "url", url, "status", status, "bytes", len(body))

	return status, body, nil
}
