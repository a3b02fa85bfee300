package service

import (
	"context"
	"tle_zone_assist/internal/common"
	"tle_zone_assist/internal/domain/model"
	"tle_zone_assist/internal/domain/repository"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
}

func NewSubmissionService(submissionRepo repository.SubmissionRepository) *SubmissionService {
	return &SubmissionService{submissionRepo: submissionRepo}
}

// LatestForProblem returns the caller's most recent submission for a problem;
// the review button is gated on its status.
func (s *SubmissionService) LatestForProblem(ctx context.Context, userID, problemID string) (*model.Submission, error) {
	if problemID == "" {
		return nil, common.ErrBadRequest
	}
	sub, err := s.submissionRepo.GetLatestForUserProblem(ctx, userID, problemID)
	if err != nil {
		return nil, common.Errorf("latest submission for problem %s: %w", problemID, err)
	}
	return sub, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, userID, submissionID string) (*model.Submission, error) {
	sub, err := s.submissionRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, common.Errorf("submission %s: %w", submissionID, err)
	}
	if sub.UserID != userID {
		return nil, common.ErrForbidden
	}
	return sub, nil
}
