package anarede

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pwfconv/internal/diag"
	"pwfconv/internal/domain"
	"pwfconv/internal/schema"
)

const sampleCase = `TITU
IEEE test case
(comment lines are ignored everywhere
DBAR
   10 L2 0BUS-10        1000   0900.0  0.0                200.0 50.0       1
   20 D1 0BUS-20        1000
   30 L1 0BUS-30        1000
99999
DLIN
   10       30 1L      5.34 10.0  2.5
   30       10 2L      1.00 5.00  0.01.025
99999
DGER
   10      0.0  999.0
99999
DOPC
IMPR NEWT
99999
DBSH
   10
 1    L       1 5.0
 2    D       2 99.0
FBAN
99999
DSHL
   10       30 1   10.0  20.0  L  L
99999
FIM
this trailing text is never read
`

func newTestScanner(t *testing.T) (*Scanner, *diag.Sink) {
	t.Helper()
	reg, err := schema.Load("")
	require.NoError(t, err)
	sink := diag.NewSink()
	return NewScanner(reg, sink), sink
}

func TestScan_FullCase(t *testing.T) {
	s, sink := newTestScanner(t)
	doc := s.Scan(sampleCase, "sample.pwf")

	assert.Equal(t, "IEEE test case", doc.Title)
	assert.Equal(t, "IEEE test case", doc.Metadata.Title)
	assert.Equal(t, "sample.pwf", doc.Metadata.Source)
	assert.Equal(t, StatusParsed, doc.Metadata.Status)

	assert.Len(t, doc.Buses, 3)
	assert.Len(t, doc.Lines, 2)
	assert.Len(t, doc.Generators, 1)
	assert.Len(t, doc.ShuntBanks, 1)
	assert.Len(t, doc.ShuntDevices, 1)

	require.NotNil(t, doc.BusByNumber(20))
	assert.Equal(t, domain.Disconnected, doc.BusByNumber(20).State)

	// DOPC is recognized but skipped with a warning; its body must not leak
	// into any other section.
	require.Equal(t, 1, sink.Count())
	assert.Contains(t, sink.Warnings()[0], "DOPC")
}

func TestScan_DocumentTerminator(t *testing.T) {
	s, _ := newTestScanner(t)
	text := strings.Replace(sampleCase, "this trailing text is never read",
		"DBAR\n   40 L1 0BUS-40        1000\n99999", 1)
	doc := s.Scan(text, "sample.pwf")

	// Sections after FIM are never scanned.
	assert.Nil(t, doc.BusByNumber(40))
	assert.Len(t, doc.Buses, 3)
}

func TestScan_MalformedDataLine(t *testing.T) {
	s, sink := newTestScanner(t)
	doc := s.Scan("DBAR\n   99 L\n   10 L2 0BUS-10        1000\n99999\nFIM\n", "bad.pwf")

	// The short line is skipped with a warning; the good line still parses.
	assert.Len(t, doc.Buses, 1)
	assert.Equal(t, 10, doc.Buses[0].Number)
	require.Equal(t, 1, sink.Count())
	assert.Contains(t, sink.Warnings()[0], "line 2")
}

func TestScan_UnknownHeaderOutsideSection(t *testing.T) {
	s, sink := newTestScanner(t)
	doc := s.Scan("XXXX\nsome stray data\nDBAR\n   10 L2 0BUS-10        1000\n99999\nFIM\n", "stray.pwf")

	// Unrecognized lines outside any section are silently discarded.
	assert.Len(t, doc.Buses, 1)
	assert.Zero(t, sink.Count())
}

func TestScan_DuplicateBusNumber(t *testing.T) {
	s, sink := newTestScanner(t)
	text := "DBAR\n" +
		"   10 L2 0BUS-10        1000   0900.0  0.0                200.0 50.0       1\n" +
		"   10 D1 0BUS-DUP       1000\n" +
		"99999\nFIM\n"
	doc := s.Scan(text, "dup.pwf")

	// Both records are kept, the lookup resolves to the first, and the
	// uniqueness violation is warned.
	assert.Len(t, doc.Buses, 2)
	require.NotNil(t, doc.BusByNumber(10))
	assert.Equal(t, "BUS-10", doc.BusByNumber(10).Name)
	require.Equal(t, 1, sink.Count())
	assert.Contains(t, sink.Warnings()[0], "duplicate bus number 10")
}

func TestScan_MissingTerminator(t *testing.T) {
	s, _ := newTestScanner(t)
	doc := s.Scan("DBAR\n   10 L2 0BUS-10        1000\n", "eof.pwf")

	// EOF ends the document even without FIM.
	assert.Len(t, doc.Buses, 1)
	assert.Equal(t, StatusParsed, doc.Metadata.Status)
}
