package export_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pwfconv/internal/domain"
	"pwfconv/internal/export"
)

func TestWriteJSON(t *testing.T) {
	doc := domain.NewDocument("test.pwf")
	doc.AddBus(domain.Bus{Number: 10, State: domain.Connected, Name: "BUS-10"})
	doc.Lines = append(doc.Lines, domain.Line{FromBus: 10, ToBus: 30, Circuit: 1})
	doc.Metadata.Status = "parsed"

	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf, doc))

	// Section keys mirror the input file's tags.
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	for _, key := range []string{"DBAR", "DLIN", "DGER", "DCSC", "DCER", "DBSH", "DSHL", "metadata"} {
		assert.Contains(t, decoded, key)
	}

	var buses []domain.Bus
	require.NoError(t, json.Unmarshal(decoded["DBAR"], &buses))
	require.Len(t, buses, 1)
	assert.Equal(t, "BUS-10", buses[0].Name)
}

func TestWriteXLSX(t *testing.T) {
	doc := domain.NewDocument("test.pwf")
	doc.AddBus(domain.Bus{Number: 10, State: domain.Connected, Name: "BUS-10"})

	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, doc))
	assert.NotZero(t, buf.Len())
}
