package spreadsheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/curriculum-api/pkg/export"
)

func TestFromCSV(t *testing.T) {
	input := "\ufeffclass_name, subject ,topic,description\nGrade 5,Math,Fractions\n,,,\nGrade 6,Science,Plants,Photosynthesis\n"

	data, err := FromCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"class_name", "subject", "topic", "description"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "Fractions", data.Rows[0]["topic"])
	assert.Empty(t, data.Rows[0]["description"])
	assert.Equal(t, "Photosynthesis", data.Rows[1]["description"])
}

func TestReadXLSXRoundTrip(t *testing.T) {
	content, err := export.NewXLSXExporter("Curriculum").Render(export.Dataset{
		Headers: []string{"class_name", "subject", "topic"},
		Rows: []map[string]string{
			{"class_name": "Grade 5", "subject": "Math", "topic": "Fractions"},
			{"class_name": "Grade 5", "subject": "English", "topic": "Poetry"},
		},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "curriculum_data.xlsx")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	data, err := Read(path, "")
	require.NoError(t, err)
	assert.True(t, data.HasColumn("topic"))
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "Poetry", data.Rows[1]["topic"])
}

func TestReadRejectsUnknownExtension(t *testing.T) {
	_, err := Read("curriculum.json", "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadEmptyCSV(t *testing.T) {
	data, err := FromCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, data.Rows)
	assert.False(t, data.HasColumn("class_name"))
}
