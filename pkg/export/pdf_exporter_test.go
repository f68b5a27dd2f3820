package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExporterRendersDocument(t *testing.T) {
	exporter := NewPDFExporter()

	content, err := exporter.Render(Dataset{
		Headers: []string{"Name", "Email"},
		Rows:    [][]string{{"Asha", "asha@example.com"}, {"Ravi"}},
	}, "Enquiries")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "%PDF"))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	exporter := NewPDFExporter()

	_, err := exporter.Render(Dataset{}, "")
	assert.Error(t, err)
}
