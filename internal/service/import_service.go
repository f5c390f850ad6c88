package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-api/internal/models"
	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
	"github.com/noah-isme/curriculum-api/pkg/export"
)

// Spreadsheet column names recognised by the importer.
const (
	ColumnClassName   = "class_name"
	ColumnSubject     = "subject"
	ColumnTopic       = "topic"
	ColumnDescription = "description"
)

var requiredImportColumns = []string{ColumnClassName, ColumnSubject, ColumnTopic}

type curriculumCreator interface {
	Create(ctx context.Context, req CurriculumRequest) (*models.Curriculum, error)
}

// ImportService loads spreadsheet rows into the curriculum table one by one.
type ImportService struct {
	creator curriculumCreator
	logger  *zap.Logger
	metrics *MetricsService
}

// NewImportService constructs an ImportService.
func NewImportService(creator curriculumCreator, logger *zap.Logger, metrics *MetricsService) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{creator: creator, logger: logger, metrics: metrics}
}

// Import stores every valid row of data. A failing row is recorded and
// skipped; only a header missing required columns aborts the batch.
func (s *ImportService) Import(ctx context.Context, data export.Dataset) (*models.ImportSummary, error) {
	summary := &models.ImportSummary{}
	if len(data.Headers) == 0 && len(data.Rows) == 0 {
		return summary, nil
	}

	var missing []string
	for _, column := range requiredImportColumns {
		if !data.HasColumn(column) {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	for i, row := range data.Rows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Total++
		rowNumber := i + 1

		_, err := s.creator.Create(ctx, CurriculumRequest{
			ClassName:   row[ColumnClassName],
			Subject:     row[ColumnSubject],
			Topic:       row[ColumnTopic],
			Description: row[ColumnDescription],
		})
		if err != nil {
			summary.Failed++
			appErr := appErrors.FromError(err)
			summary.Errors = append(summary.Errors, models.ImportRowError{Row: rowNumber, Reason: appErr.Message})
			s.metrics.RecordImportRow(false)
			s.logger.Warn("import row rejected", zap.Int("row", rowNumber), zap.String("reason", appErr.Message), zap.Error(err))
			continue
		}

		summary.Succeeded++
		s.metrics.RecordImportRow(true)
	}

	s.logger.Info("curriculum import finished",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}
