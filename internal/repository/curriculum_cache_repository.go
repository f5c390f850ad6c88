package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-api/internal/models"
	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
)

// CurriculumListCacheKey holds the serialised ordered list.
const CurriculumListCacheKey = "curriculum:list"

// CurriculumCacheRepository caches the ordered curriculum list in Redis.
type CurriculumCacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCurriculumCacheRepository constructs a cache repository.
func NewCurriculumCacheRepository(client *redis.Client, logger *zap.Logger) *CurriculumCacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CurriculumCacheRepository{client: client, logger: logger}
}

// GetList returns the cached list or appErrors.ErrCacheMiss.
func (r *CurriculumCacheRepository) GetList(ctx context.Context) ([]models.Curriculum, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, CurriculumListCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", CurriculumListCacheKey, err)
	}

	items := make([]models.Curriculum, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		r.logger.Warn("discarding corrupt curriculum cache", zap.Error(err))
		_ = r.client.Del(ctx, CurriculumListCacheKey).Err()
		return nil, appErrors.ErrCacheMiss
	}
	return items, nil
}

// SetList stores the list for ttl.
func (r *CurriculumCacheRepository) SetList(ctx context.Context, items []models.Curriculum, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal curriculum cache: %w", err)
	}
	if err := r.client.Set(ctx, CurriculumListCacheKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", CurriculumListCacheKey, err)
	}
	return nil
}

// Invalidate drops the cached list.
func (r *CurriculumCacheRepository) Invalidate(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, CurriculumListCacheKey).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", CurriculumListCacheKey, err)
	}
	return nil
}
