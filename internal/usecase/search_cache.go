package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PublicCache stores JSON snapshots of anonymous reads.
type PublicCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const (
	cacheKeyPublicProfile    = "portfolio:public:profile"
	cacheKeyPublicLinks      = "portfolio:public:links"
	cacheKeyPublicExperience = "portfolio:public:experience"
	cacheKeyPublicPattern    = "portfolio:public:*"
	cacheKeyTopSkills        = "skills:top"
)

type nopCache struct{}

func (nopCache) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (nopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (nopCache) Delete(context.Context, string) error                      { return nil }
func (nopCache) DeleteByPattern(context.Context, string) error             { return nil }

// cachedRead serves key from cache or calls load and stores the result.
// Cache failures never fail the read.
func cachedRead[T any](ctx context.Context, c PublicCache, log *zap.Logger, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var out T
	if hit, err := c.GetJSON(ctx, key, &out); err == nil && hit {
		return out, nil
	} else if err != nil {
		log.Debug("cache read failed", zap.String("key", key), zap.Error(err))
	}

	out, err := load(ctx)
	if err != nil {
		return out, err
	}
	if err := c.SetJSON(ctx, key, out, ttl); err != nil {
		log.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return out, nil
}

func invalidate(ctx context.Context, c PublicCache, log *zap.Logger, keys ...string) {
	for _, k := range keys {
		var err error
		if len(k) > 0 && k[len(k)-1] == '*' {
			err = c.DeleteByPattern(ctx, k)
		} else {
			err = c.Delete(ctx, k)
		}
		if err != nil {
			log.Warn("cache invalidation failed", zap.String("key", k), zap.Error(err))
		}
	}
}
