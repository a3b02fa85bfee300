package assist

import (
	"context"
	"sync"
	"testing"
	"time"
	"tle_zone_assist/internal/domain/model"
)

type fakeService struct {
	mu          sync.Mutex
	complete    func(model.AssistanceRequest) (*model.CompletionResponse, error)
	review      func(model.ReviewRequest) (*model.ReviewResponse, error)
	completions []model.AssistanceRequest
	reviews     []model.ReviewRequest
}

func (f *fakeService) Complete(_ context.Context, req model.AssistanceRequest) (*model.CompletionResponse, error) {
	f.mu.Lock()
	f.completions = append(f.completions, req)
	fn := f.complete
	f.mu.Unlock()
	if fn == nil {
		return &model.CompletionResponse{Success: true, Completion: ""}, nil
	}
	return fn(req)
}

func (f *fakeService) Review(_ context.Context, req model.ReviewRequest) (*model.ReviewResponse, error) {
	f.mu.Lock()
	f.reviews = append(f.reviews, req)
	fn := f.review
	f.mu.Unlock()
	if fn == nil {
		return &model.ReviewResponse{Success: true, Review: "looks good"}, nil
	}
	return fn(req)
}

func (f *fakeService) completionCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.completions)
}

func (f *fakeService) lastCompletion() (model.AssistanceRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.completions) == 0 {
		return model.AssistanceRequest{}, false
	}
	return f.completions[len(f.completions)-1], true
}

func (f *fakeService) reviewCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reviews)
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recordingNotifier) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

func (r *recordingNotifier) last(t *testing.T) Notice {
	t.Helper()
	ns := r.all()
	if len(ns) == 0 {
		t.Fatal("expected a notice, got none")
	}
	return ns[len(ns)-1]
}

func roleOf(r model.Role) func() model.Role {
	return func() model.Role { return r }
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
