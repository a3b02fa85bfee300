package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"tle_zone_assist/internal/common"
	"tle_zone_assist/internal/domain/model"
	"tle_zone_assist/internal/domain/repository"

	"github.com/jellydator/ttlcache/v3"
)

// EntitlementService resolves a user's subscription tier. Roles are read from
// the user store rather than the token so upgrades apply without a re-login;
// a short TTL cache keeps the debounced completion traffic off the database.
type EntitlementService struct {
	userRepo repository.UserRepository
	roles    *ttlcache.Cache[string, model.Role]
}

func NewEntitlementService(userRepo repository.UserRepository, ttl time.Duration) *EntitlementService {
	roles := ttlcache.New[string, model.Role](
		ttlcache.WithTTL[string, model.Role](ttl),
		ttlcache.WithDisableTouchOnHit[string, model.Role](),
	)
	go roles.Start()
	return &EntitlementService{userRepo: userRepo, roles: roles}
}

// Close stops the cache expiration loop.
func (s *EntitlementService) Close() {
	s.roles.Stop()
}

// Role returns the tier of userID. Unknown users are FREE.
func (s *EntitlementService) Role(ctx context.Context, userID string) (model.Role, error) {
	if item := s.roles.Get(userID); item != nil {
		return item.Value(), nil
	}

	role := model.RoleFree
	user, err := s.userRepo.FindByID(ctx, userID)
	switch {
	case err == nil:
		role = user.Role
	case errors.Is(err, common.ErrNotFound):
	default:
		return "", fmt.Errorf("resolve role for user %s: %w", userID, err)
	}

	s.roles.Set(userID, role, ttlcache.DefaultTTL)
	return role, nil
}

// Check returns common.ErrNotEntitled when userID may not use feature.
func (s *EntitlementService) Check(ctx context.Context, userID string, feature model.Feature) error {
	role, err := s.Role(ctx, userID)
	if err != nil {
		return err
	}
	if !model.IsEntitled(role, feature) {
		return fmt.Errorf("%s for role %s: %w", feature, role, common.ErrNotEntitled)
	}
	return nil
}

// Forget drops the cached role, e.g. after a subscription change.
func (s *EntitlementService) Forget(userID string) {
	s.roles.Delete(userID)
}
