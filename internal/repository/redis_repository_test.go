package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/curriculum-api/internal/models"
	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
)

// unreachableRedis points at a closed port so every command fails fast.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisSessionRepositoryRejectsExpiredSession(t *testing.T) {
	repo := NewRedisSessionRepository(unreachableRedis(t))
	err := repo.Create(context.Background(), &models.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Minute)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already expired")
}

func TestRedisSessionRepositoryWrapsConnectionErrors(t *testing.T) {
	repo := NewRedisSessionRepository(unreachableRedis(t))
	ctx := context.Background()

	err := repo.Create(ctx, &models.Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis set session")

	_, err = repo.Get(ctx, "s1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSessionNotFound))

	assert.Error(t, repo.Delete(ctx, "s1"))
}

func TestCurriculumCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCurriculumCacheRepository(nil, nil)
	ctx := context.Background()

	_, err := repo.GetList(ctx)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
	assert.NoError(t, repo.SetList(ctx, []models.Curriculum{{ID: 1}}, time.Minute))
	assert.NoError(t, repo.Invalidate(ctx))
}

func TestCurriculumCacheRepositoryReportsRedisErrors(t *testing.T) {
	repo := NewCurriculumCacheRepository(unreachableRedis(t), nil)
	ctx := context.Background()

	_, err := repo.GetList(ctx)
	require.Error(t, err)
	assert.False(t, errors.Is(err, appErrors.ErrCacheMiss))
	assert.Error(t, repo.SetList(ctx, nil, time.Minute))
	assert.Error(t, repo.Invalidate(ctx))
}
