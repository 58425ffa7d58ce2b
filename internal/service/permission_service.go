package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"commentboard/api/internal/apperr"
	"commentboard/api/internal/models"
)

const permissionCacheTTL = time.Minute

// PermissionService reads capability sets through a short-lived redis cache
// and validates every update against the closed capability enumeration. The
// cache is optional; a nil client falls through to the store on every read.
type PermissionService struct {
	store PermissionStore
	cache *redis.Client
	log   zerolog.Logger
}

func NewPermissionService(store PermissionStore, cache *redis.Client, log zerolog.Logger) *PermissionService {
	return &PermissionService{
		store: store,
		cache: cache,
		log:   log,
	}
}

func permissionCacheKey(userID string) string {
	return fmt.Sprintf("perms:%s", userID)
}

// Get returns the user's capability set, empty when nothing is granted.
func (s *PermissionService) Get(ctx context.Context, userID string) (models.PermissionSet, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, permissionCacheKey(userID)).Result(); err == nil {
			var labels []string
			if err := json.Unmarshal([]byte(cached), &labels); err == nil {
				set := models.PermissionSet{}
				for _, label := range labels {
					set[models.Capability(label)] = struct{}{}
				}
				return set, nil
			}
		}
	}

	set, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(set.Labels()); err == nil {
			if err := s.cache.Set(ctx, permissionCacheKey(userID), payload, permissionCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Str("user_id", userID).Msg("permission cache write failed")
			}
		}
	}
	return set, nil
}

// Update replaces the user's full capability set. Labels outside the closed
// enumeration are rejected before anything is written.
func (s *PermissionService) Update(ctx context.Context, userID string, labels []string) error {
	set := models.PermissionSet{}
	for _, label := range labels {
		capability, err := models.ParseCapability(label)
		if err != nil {
			return apperr.Wrap(apperr.KindValidation, "invalid capability", err)
		}
		set[capability] = struct{}{}
	}

	if err := s.store.Set(ctx, userID, set); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, permissionCacheKey(userID)).Err(); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("permission cache invalidation failed")
		}
	}

	s.log.Info().Str("user_id", userID).Strs("permissions", set.Labels()).Msg("permissions updated")
	return nil
}
