package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-api/internal/models"
	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
)

type curriculumRepository interface {
	List(ctx context.Context) ([]models.Curriculum, error)
	FindByID(ctx context.Context, id int64) (*models.Curriculum, error)
	Create(ctx context.Context, item *models.Curriculum) error
	Update(ctx context.Context, item *models.Curriculum) error
	Delete(ctx context.Context, id int64) error
}

// CurriculumCache caches the ordered list between mutations.
type CurriculumCache interface {
	GetList(ctx context.Context) ([]models.Curriculum, error)
	SetList(ctx context.Context, items []models.Curriculum, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// CurriculumRequest carries the four mutable fields for create and update.
// Update replaces all of them; there is no partial update.
type CurriculumRequest struct {
	ClassName   string `json:"class_name" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Topic       string `json:"topic" validate:"required"`
	Description string `json:"description"`
}

func (r CurriculumRequest) normalised() CurriculumRequest {
	return CurriculumRequest{
		ClassName:   strings.TrimSpace(r.ClassName),
		Subject:     strings.TrimSpace(r.Subject),
		Topic:       strings.TrimSpace(r.Topic),
		Description: strings.TrimSpace(r.Description),
	}
}

const requiredFieldsMessage = "class name, subject, and topic are required"

// CurriculumService handles curriculum workflows.
type CurriculumService struct {
	repo      curriculumRepository
	cache     CurriculumCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewCurriculumService creates a curriculum service. A nil cache disables caching.
func NewCurriculumService(repo curriculumRepository, cache CurriculumCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *CurriculumService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CurriculumService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger, metrics: metrics}
}

// List returns all rows ordered by class name then subject.
func (s *CurriculumService) List(ctx context.Context) ([]models.Curriculum, error) {
	if s.cache != nil {
		items, err := s.cache.GetList(ctx)
		switch {
		case err == nil:
			s.metrics.RecordCacheLookup(true)
			return items, nil
		case errors.Is(err, appErrors.ErrCacheMiss):
			s.metrics.RecordCacheLookup(false)
		default:
			s.metrics.RecordCacheLookup(false)
			s.logger.Warn("curriculum cache read failed", zap.Error(err))
		}
	}

	start := time.Now()
	items, err := s.repo.List(ctx)
	s.metrics.ObserveDBQuery("curriculum_list", time.Since(start))
	if err != nil {
		s.logger.Error("fetch curriculum failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error fetching curriculum")
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, items, s.cacheTTL); err != nil {
			s.logger.Warn("curriculum cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

// Get returns one row by id.
func (s *CurriculumService) Get(ctx context.Context, id int64) (*models.Curriculum, error) {
	return s.find(ctx, id, "error fetching curriculum")
}

// Create validates and stores a new row, returning it with its generated id.
func (s *CurriculumService) Create(ctx context.Context, req CurriculumRequest) (*models.Curriculum, error) {
	req = req.normalised()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, requiredFieldsMessage)
	}

	item := &models.Curriculum{
		ClassName:   req.ClassName,
		Subject:     req.Subject,
		Topic:       req.Topic,
		Description: req.Description,
	}

	start := time.Now()
	err := s.repo.Create(ctx, item)
	s.metrics.ObserveDBQuery("curriculum_create", time.Since(start))
	if err != nil {
		s.logger.Error("create curriculum failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error creating curriculum")
	}

	s.invalidate(ctx)
	return item, nil
}

// Update fully replaces the mutable fields of an existing row.
func (s *CurriculumService) Update(ctx context.Context, id int64, req CurriculumRequest) (*models.Curriculum, error) {
	req = req.normalised()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, requiredFieldsMessage)
	}

	item, err := s.find(ctx, id, "error updating curriculum")
	if err != nil {
		return nil, err
	}

	item.ClassName = req.ClassName
	item.Subject = req.Subject
	item.Topic = req.Topic
	item.Description = req.Description

	start := time.Now()
	err = s.repo.Update(ctx, item)
	s.metrics.ObserveDBQuery("curriculum_update", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "curriculum not found")
		}
		s.logger.Error("update curriculum failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error updating curriculum")
	}

	s.invalidate(ctx)
	return item, nil
}

// Delete removes an existing row.
func (s *CurriculumService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id, "error deleting curriculum"); err != nil {
		return err
	}

	start := time.Now()
	err := s.repo.Delete(ctx, id)
	s.metrics.ObserveDBQuery("curriculum_delete", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "curriculum not found")
		}
		s.logger.Error("delete curriculum failed", zap.Int64("id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error deleting curriculum")
	}

	s.invalidate(ctx)
	return nil
}

func (s *CurriculumService) find(ctx context.Context, id int64, failure string) (*models.Curriculum, error) {
	start := time.Now()
	item, err := s.repo.FindByID(ctx, id)
	s.metrics.ObserveDBQuery("curriculum_get", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "curriculum not found")
		}
		s.logger.Error("load curriculum failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, failure)
	}
	return item, nil
}

func (s *CurriculumService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("curriculum cache invalidate failed", zap.Error(err))
	}
}
