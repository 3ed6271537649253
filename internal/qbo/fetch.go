package qbo

import (
	"context"
	"log/slog"
)

// MaxResultsPerPage is the fixed page size for every list request.
const MaxResultsPerPage = 100

// EntitySource lists one kind of ledger record in bounded pages. Implementations
// classify failures as AuthorizationError, QueryError, or TransientError.
type EntitySource[T any] interface {
	List(ctx context.Context, filter string, startPosition, pageSize int) ([]T, error)
}

// SourceFunc adapts a function, typically a Client method, to EntitySource.
type SourceFunc[T any] func(ctx context.Context, filter string, startPosition, pageSize int) ([]T, error)

// List calls f.
func (f SourceFunc[T]) List(ctx context.Context, filter string, startPosition, pageSize int) ([]T, error) {
	return f(ctx, filter, startPosition, pageSize)
}

// FetchAll drains src page by page and returns all records in server order,
// without deduplicating or re-sorting. The filter is passed through verbatim
// on every page request. Each page request is retried per policy; transient
// failures that outlive the retry budget surface as ExhaustedError.
// Cancellation is honored between page requests and during backoff sleeps,
// and discards any partially accumulated pages.
func FetchAll[T any](ctx context.Context, src EntitySource[T], filter string, policy RetryPolicy, log *slog.Logger) ([]T, error) {
	var all []T
	startPosition := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := fetchPage(ctx, src, filter, startPosition, policy, log)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		// A short or empty page means the result set is drained.
		if len(page) < MaxResultsPerPage {
			return all, nil
		}
		startPosition += MaxResultsPerPage
	}
}

func fetchPage[T any](ctx context.Context, src EntitySource[T], filter string, startPosition int, policy RetryPolicy, log *slog.Logger) ([]T, error) {
	for attempt := 0; ; attempt++ {
		page, err := src.List(ctx, filter, startPosition, MaxResultsPerPage)
		if err == nil {
			return page, nil
		}

		delay, retry := policy.Next(attempt, err)
		if !retry {
			if IsTransient(err) {
				return nil, &ExhaustedError{Attempts: attempt + 1, Last: err}
			}
			return nil, err
		}

		log.Warn("retrying page request",
			"start_position", startPosition,
			"attempt", attempt+1,
			"delay", delay,
			"error", err)
		if err := policy.wait(ctx, delay); err != nil {
			return nil, err
		}
	}
}
