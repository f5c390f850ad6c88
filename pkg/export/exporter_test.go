package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"id", "class_name", "topic"},
		Rows: []map[string]string{
			{"id": "1", "class_name": "Grade 5", "topic": "Fractions, decimals"},
		},
	}
}

func TestCSVRenderQuotesFields(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "id,class_name,topic\n1,Grade 5,\"Fractions, decimals\"\n", string(out))
}

func TestRenderersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter(nil).Render(Dataset{}, "")
	assert.Error(t, err)
	_, err = NewXLSXExporter("").Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter(map[string]float64{"id": 15}).Render(sampleDataset(), "Curriculum")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFColumnWidths(t *testing.T) {
	widths := NewPDFExporter(map[string]float64{"id": 17}).columnWidths([]string{"id", "a", "b"})
	assert.Equal(t, []float64{17, 130, 130}, widths)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
