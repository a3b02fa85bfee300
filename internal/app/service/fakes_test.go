package service

import (
	"context"
	"sync"
	"testing"
	"time"
	"tle_zone_assist/internal/common"
	"tle_zone_assist/internal/domain/model"
	"tle_zone_assist/internal/platform/cache"
	"tle_zone_assist/internal/platform/llm"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
	calls int
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeSubmissionRepo struct {
	byID map[string]*model.Submission
}

func (f *fakeSubmissionRepo) GetSubmissionByID(_ context.Context, id string) (*model.Submission, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return s, nil
}

func (f *fakeSubmissionRepo) GetLatestForUserProblem(_ context.Context, userID, problemID string) (*model.Submission, error) {
	var latest *model.Submission
	for _, s := range f.byID {
		if s.UserID != userID || s.ProblemID != problemID {
			continue
		}
		if latest == nil || s.SubmittedAt.After(latest.SubmittedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, common.ErrNotFound
	}
	return latest, nil
}

type fakeProblemRepo struct {
	problems map[string]*model.Problem
}

func (f *fakeProblemRepo) FindProblemByID(_ context.Context, id string) (*model.Problem, error) {
	p, ok := f.problems[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return p, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*model.CodeReview
	err     error
}

func (f *fakeReviewRepo) CreateReview(_ context.Context, rv *model.CodeReview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	rv.CreatedAt = time.Now()
	f.reviews = append(f.reviews, rv)
	return nil
}

type fakeLLM struct {
	mu       sync.Mutex
	requests []llm.ChatRequest
	chatFn   func(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error)
}

func (f *fakeLLM) Chat(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	fn := f.chatFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return llm.ChatResponse{Content: " pass", FinishReason: "stop"}, nil
}

func (f *fakeLLM) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type testEnv struct {
	users       *fakeUserRepo
	submissions *fakeSubmissionRepo
	problems    *fakeProblemRepo
	reviews     *fakeReviewRepo
	llm         *fakeLLM
	redis       *miniredis.Miniredis
	rdb         *redis.Client
	ent         *EntitlementService
	ai          *AIService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rdb.Close() })

	env := &testEnv{
		users: &fakeUserRepo{users: map[string]*model.User{
			"free":  {ID: "free", Username: "fran", Role: model.RoleFree},
			"pro":   {ID: "pro", Username: "pat", Role: model.RolePro},
			"admin": {ID: "admin", Username: "ada", Role: model.RoleAdmin},
		}},
		submissions: &fakeSubmissionRepo{byID: map[string]*model.Submission{
			"sub-ok":    {ID: "sub-ok", UserID: "pro", ProblemID: "p1", Language: model.LanguagePython, Status: model.StatusAccepted},
			"sub-wa":    {ID: "sub-wa", UserID: "pro", ProblemID: "p1", Language: model.LanguagePython, Status: model.StatusWrongAnswer},
			"sub-other": {ID: "sub-other", UserID: "admin", ProblemID: "p1", Language: model.LanguagePython, Status: model.StatusAccepted},
		}},
		problems: &fakeProblemRepo{problems: map[string]*model.Problem{
			"p1": {ID: "p1", Title: "Two Sum", Description: "Find two numbers.", Difficulty: model.DifficultyEasy},
		}},
		reviews: &fakeReviewRepo{},
		llm:     &fakeLLM{},
		redis:   s,
		rdb:     rdb,
	}
	env.ent = NewEntitlementService(env.users, time.Minute)
	t.Cleanup(env.ent.Close)
	env.ai = NewAIService(
		env.ent,
		env.submissions,
		env.problems,
		env.reviews,
		cache.NewCompletionCache(rdb, time.Minute),
		cache.NewLocker(rdb, "ai:review-lock:", time.Minute),
		env.llm,
		AIOptions{Model: "test-model", CompletionMaxTokens: 64, ReviewMaxTokens: 256},
	)
	return env
}
