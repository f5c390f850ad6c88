package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
)

func newExportFixture(t *testing.T) *ExportService {
	t.Helper()
	curriculum := NewCurriculumService(newFakeCurriculumRepo(), nil, 0, nil, nil, nil)
	_, err := curriculum.Create(context.Background(), CurriculumRequest{ClassName: "Grade 6", Subject: "Math", Topic: "Ratios"})
	require.NoError(t, err)
	_, err = curriculum.Create(context.Background(), CurriculumRequest{ClassName: "Grade 5", Subject: "Math", Topic: "Fractions, part 1"})
	require.NoError(t, err)

	svc := NewExportService(curriculum, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportServiceCSV(t *testing.T) {
	svc := newExportFixture(t)

	file, err := svc.Export(context.Background(), "CSV")
	require.NoError(t, err)
	assert.Equal(t, "curriculum-20240301.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,class_name,subject,topic,description", lines[0])
	assert.Equal(t, `2,Grade 5,Math,"Fractions, part 1",`, lines[1])
}

func TestExportServiceXLSX(t *testing.T) {
	svc := newExportFixture(t)

	file, err := svc.Export(context.Background(), ExportFormatXLSX)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer wb.Close() //nolint:errcheck
	rows, err := wb.GetRows("Curriculum")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ratios", rows[2][3])
}

func TestExportServicePDF(t *testing.T) {
	svc := newExportFixture(t)

	file, err := svc.Export(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF")))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportFixture(t)

	_, err := svc.Export(context.Background(), "docx")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
