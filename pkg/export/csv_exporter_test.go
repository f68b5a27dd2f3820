package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRendersRowsInHeaderOrder(t *testing.T) {
	exporter := NewCSVExporter()

	content, err := exporter.Render(Dataset{
		Headers: []string{"Name", "Email", "Message"},
		Rows: [][]string{
			{"Asha", "asha@example.com", "Batch timings?"},
			{"Ravi", "ravi@example.com", "Court booking"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Email,Message", strings.TrimSpace(lines[0]))
	assert.Equal(t, "Asha,asha@example.com,Batch timings?", strings.TrimSpace(lines[1]))
	assert.Equal(t, "Ravi,ravi@example.com,Court booking", strings.TrimSpace(lines[2]))
}

func TestCSVExporterPadsShortRows(t *testing.T) {
	exporter := NewCSVExporter()

	content, err := exporter.Render(Dataset{
		Headers: []string{"Name", "Email", "Message"},
		Rows:    [][]string{{"Asha"}},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Asha,,", strings.TrimSpace(lines[1]))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	assert.Error(t, err)
}
