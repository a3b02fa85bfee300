package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"tle_zone_assist/internal/common"
	"tle_zone_assist/internal/domain/model"
	"tle_zone_assist/internal/domain/repository"
	"tle_zone_assist/internal/platform/cache"
	"tle_zone_assist/internal/platform/llm"

	"github.com/google/uuid"
)

type AIOptions struct {
	Model               string
	CompletionMaxTokens int
	ReviewMaxTokens     int
}

type AIService struct {
	entitlements   *EntitlementService
	submissionRepo repository.SubmissionRepository
	problemRepo    repository.ProblemRepository
	reviewRepo     repository.ReviewRepository
	completions    *cache.CompletionCache
	reviewLocks    *cache.Locker
	llm            llm.Client
	opts           AIOptions
}

func NewAIService(
	entitlements *EntitlementService,
	submissionRepo repository.SubmissionRepository,
	problemRepo repository.ProblemRepository,
	reviewRepo repository.ReviewRepository,
	completions *cache.CompletionCache,
	reviewLocks *cache.Locker,
	llmClient llm.Client,
	opts AIOptions,
) *AIService {
	return &AIService{
		entitlements:   entitlements,
		submissionRepo: submissionRepo,
		problemRepo:    problemRepo,
		reviewRepo:     reviewRepo,
		completions:    completions,
		reviewLocks:    reviewLocks,
		llm:            llmClient,
		opts:           opts,
	}
}

// Complete returns an inline completion for the code buffer.
func (s *AIService) Complete(ctx context.Context, userID string, req model.AssistanceRequest) (*model.CompletionResponse, error) {
	if err := s.entitlements.Check(ctx, userID, model.FeatureAutocomplete); err != nil {
		return nil, err
	}
	lang, err := model.ParseLanguage(string(req.Language))
	if err != nil {
		return nil, common.Errorf("%v: %w", err, common.ErrBadRequest)
	}
	if strings.TrimSpace(req.Code) == "" {
		return nil, common.Errorf("code is required: %w", common.ErrBadRequest)
	}

	if cached, ok, err := s.completions.Get(ctx, lang, req.Code); err != nil {
		log.Printf("WARN: completion cache lookup failed: %v", err)
	} else if ok {
		return &model.CompletionResponse{Success: true, Completion: cached}, nil
	}

	resp, err := s.llm.Chat(ctx, llm.ChatRequest{
		Model:       s.opts.Model,
		Messages:    completionMessages(lang, req.Code),
		Temperature: 0.2,
		MaxTokens:   s.opts.CompletionMaxTokens,
	})
	if err != nil {
		log.Printf("ERROR: completion for user %s failed: %v", userID, err)
		return nil, common.Errorf("generate completion: %v: %w", err, common.ErrServiceUnavailable)
	}
	completion := cleanCompletion(resp.Content)

	if err := s.completions.Set(ctx, lang, req.Code, completion); err != nil {
		log.Printf("WARN: completion cache store failed: %v", err)
	}
	return &model.CompletionResponse{Success: true, Completion: completion}, nil
}

// Review produces an AI code review of one of the caller's accepted
// submissions. At most one review per user is generated at a time.
func (s *AIService) Review(ctx context.Context, userID string, req model.ReviewRequest) (*model.ReviewResponse, error) {
	if err := s.entitlements.Check(ctx, userID, model.FeatureReview); err != nil {
		return nil, err
	}
	lang, err := model.ParseLanguage(string(req.Language))
	if err != nil {
		return nil, common.Errorf("%v: %w", err, common.ErrBadRequest)
	}
	if strings.TrimSpace(req.Code) == "" || req.SubmissionID == "" {
		return nil, common.Errorf("code and submissionId are required: %w", common.ErrBadRequest)
	}

	sub, err := s.submissionRepo.GetSubmissionByID(ctx, req.SubmissionID)
	if err != nil {
		return nil, common.Errorf("load submission %s: %w", req.SubmissionID, err)
	}
	if sub.UserID != userID {
		return nil, common.Errorf("submission %s belongs to another user: %w", sub.ID, common.ErrForbidden)
	}
	if !sub.Accepted() {
		return nil, common.Errorf("submission %s is %q, must be accepted: %w", sub.ID, sub.Status, common.ErrPreconditionFailed)
	}

	release, ok, err := s.reviewLocks.Acquire(ctx, userID)
	if err != nil {
		return nil, common.Errorf("%v: %w", err, common.ErrServiceUnavailable)
	}
	if !ok {
		return nil, common.ErrReviewInProgress
	}
	defer release()

	problem, err := s.problemRepo.FindProblemByID(ctx, sub.ProblemID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			log.Printf("WARN: review of %s continues without problem context: %v", sub.ID, err)
		}
		problem = nil
	}

	resp, err := s.llm.Chat(ctx, llm.ChatRequest{
		Model:       s.opts.Model,
		Messages:    reviewMessages(lang, req.Code, problem),
		Temperature: 0.3,
		MaxTokens:   s.opts.ReviewMaxTokens,
	})
	if err != nil {
		log.Printf("ERROR: review of submission %s failed: %v", sub.ID, err)
		return nil, common.Errorf("generate review: %v: %w", err, common.ErrServiceUnavailable)
	}
	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return nil, common.Errorf("generate review: empty response: %w", common.ErrServiceUnavailable)
	}

	review := &model.CodeReview{
		ID:           uuid.NewString(),
		UserID:       userID,
		SubmissionID: sub.ID,
		Language:     lang,
		Review:       text,
	}
	if err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		// The review was generated; losing the history row is not worth failing the request.
		log.Printf("ERROR: failed to persist review for submission %s: %v", sub.ID, err)
		return &model.ReviewResponse{Success: true, Review: text}, nil
	}

	log.Printf("INFO: review %s generated for submission %s", review.ID, sub.ID)
	return &model.ReviewResponse{Success: true, Review: text, ReviewID: review.ID}, nil
}
