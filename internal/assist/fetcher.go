package assist

import (
	"context"
	"sync/atomic"
	"tle_zone_assist/internal/domain/model"
)

// Result is the outcome of one completion request.
type Result struct {
	Success       bool
	Suggestion    string
	FailureReason string
	// Denied is set when the service refused because the feature is not
	// part of the caller's subscription.
	Denied bool
}

// Fetcher issues completion requests. Each request gets an id from a
// monotonically increasing sequence so callers can discard responses that
// arrive after a newer request was issued.
type Fetcher struct {
	svc Service
	seq atomic.Uint64
}

func NewFetcher(svc Service) *Fetcher {
	return &Fetcher{svc: svc}
}

// Fetch performs exactly one request and never retries.
func (f *Fetcher) Fetch(ctx context.Context, code string, lang model.Language) (Result, uint64) {
	id := f.seq.Add(1)

	resp, err := f.svc.Complete(ctx, model.AssistanceRequest{Code: code, Language: lang})
	switch {
	case err != nil && isNotEntitled(err):
		return Result{Denied: true, FailureReason: model.NotEntitledMessage}, id
	case err != nil:
		return Result{FailureReason: err.Error()}, id
	case resp.Success:
		return Result{Success: true, Suggestion: resp.Completion}, id
	case resp.Message == model.NotEntitledMessage:
		return Result{Denied: true, FailureReason: resp.Message}, id
	default:
		return Result{FailureReason: resp.Message}, id
	}
}

// IsLatest reports whether id belongs to the most recently issued request.
func (f *Fetcher) IsLatest(id uint64) bool {
	return f.seq.Load() == id
}
