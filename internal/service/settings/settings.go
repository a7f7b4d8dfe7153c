package settings

import (
	"context"

	"github.com/shopfusion/backend/internal/cache"
	"github.com/shopfusion/backend/internal/logging"
	"github.com/shopfusion/backend/internal/repo"
)

const cacheKey = "settings:public"

// Service serves marketplace settings through an injected TTL cache; there
// is no package-level cache state.
type Service struct {
	Repo  *repo.GormRepo
	Cache *cache.Cache
}

func (s *Service) Public(ctx context.Context) (map[string]string, error) {
	if s.Cache != nil {
		var cached map[string]string
		hit, err := s.Cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			logging.FromContext(ctx).Warn("settings cache read failed", "error", err)
		}
		if hit {
			return cached, nil
		}
	}

	values, err := s.Repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, cacheKey, values); err != nil {
			logging.FromContext(ctx).Warn("settings cache write failed", "error", err)
		}
	}
	return values, nil
}
