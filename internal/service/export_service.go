package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-api/internal/models"
	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
	"github.com/noah-isme/curriculum-api/pkg/export"
)

// Supported export formats.
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

var exportContentTypes = map[string]string{
	ExportFormatCSV:  "text/csv; charset=utf-8",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	ExportFormatPDF:  "application/pdf",
}

var exportHeaders = []string{"id", ColumnClassName, ColumnSubject, ColumnTopic, ColumnDescription}

type curriculumLister interface {
	List(ctx context.Context) ([]models.Curriculum, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the curriculum list into downloadable documents.
type ExportService struct {
	lister curriculumLister
	csv    *export.CSVExporter
	xlsx   *export.XLSXExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService wires exporters for every supported format.
func NewExportService(lister curriculumLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		lister: lister,
		csv:    export.NewCSVExporter(),
		xlsx:   export.NewXLSXExporter("Curriculum"),
		pdf: export.NewPDFExporter(map[string]float64{
			"id":            15,
			ColumnClassName: 35,
			ColumnSubject:   40,
		}),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Export renders the ordered curriculum list in format.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	contentType, ok := exportContentTypes[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	items, err := s.lister.List(ctx)
	if err != nil {
		return nil, err
	}
	data := toDataset(items)

	var content []byte
	switch format {
	case ExportFormatCSV:
		content, err = s.csv.Render(data)
	case ExportFormatXLSX:
		content, err = s.xlsx.Render(data)
	case ExportFormatPDF:
		content, err = s.pdf.Render(data, "Curriculum")
	}
	if err != nil {
		s.logger.Error("render curriculum export failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error exporting curriculum")
	}

	return &ExportFile{
		Content:     content,
		ContentType: contentType,
		Filename:    fmt.Sprintf("curriculum-%s.%s", s.now().Format("20060102"), format),
	}, nil
}

func toDataset(items []models.Curriculum) export.Dataset {
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]string{
			"id":              strconv.FormatInt(item.ID, 10),
			ColumnClassName:   item.ClassName,
			ColumnSubject:     item.Subject,
			ColumnTopic:       item.Topic,
			ColumnDescription: item.Description,
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}
