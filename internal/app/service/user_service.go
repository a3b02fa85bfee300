package service

import (
	"context"
	"tle_zone_assist/internal/common"
	"tle_zone_assist/internal/domain/model"
	"tle_zone_assist/internal/domain/repository"
)

type UserService struct {
	userRepo     repository.UserRepository
	entitlements *EntitlementService
}

func NewUserService(userRepo repository.UserRepository, entitlements *EntitlementService) *UserService {
	return &UserService{userRepo: userRepo, entitlements: entitlements}
}

// CurrentUser returns the caller in the nested shape the client reads its
// role from. The role is re-read from the store, so a fresh fetch also
// refreshes the entitlement cache.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*model.CurrentUserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, common.Errorf("current user: %w", err)
	}
	s.entitlements.Forget(userID)
	return &model.CurrentUserResponse{
		User: model.Account{
			ID:       user.ID,
			Username: user.Username,
			Profile:  model.Profile{Role: user.Role},
		},
	}, nil
}
