package export

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"Line ID", "Line Total"},
		Rows: []map[string]string{
			{"Line ID": "000001", "Line Total": "20.00"},
			{"Line ID": "000002", "Line Total": "12.50"},
		},
	}

	payload, err := exporter.Render(data)
	require.NoError(t, err)
	require.Equal(t, "Line ID,Line Total\n000001,20.00\n000002,12.50\n", string(payload))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()
	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}
