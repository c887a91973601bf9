// Domain-level sentinel errors for the scraper pipeline.
// These errors are used with errors.Is() for error type checking.
package domain

import "errors"

// Transient transport errors. The retry policy treats these as retryable;
// everything else propagates immediately and aborts the run.
var (
	// ErrFeedUnavailable indicates a network-transport failure while
	// fetching a feed URL
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrSheetUnavailable indicates a remote spreadsheet API failure
	ErrSheetUnavailable = errors.New("spreadsheet API unavailable")

	// ErrMailUnavailable indicates a mail-transport failure
	ErrMailUnavailable = errors.New("mail transport unavailable")
)

// Structural errors. Never retried.
var (
	// ErrInvalidSourceURL indicates a source URL that cannot form a request
	ErrInvalidSourceURL = errors.New("invalid source URL")

	// ErrTitleMissing indicates a feed record without the required title
	// element. The title is a hard precondition; a feed that violates it
	// fails the whole parse.
	ErrTitleMissing = errors.New("record title element missing")
)
