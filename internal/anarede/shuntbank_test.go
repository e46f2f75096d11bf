package anarede

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pwfconv/internal/diag"
	"pwfconv/internal/domain"
)

func TestParseShuntBankSection(t *testing.T) {
	body := strings.Join([]string{
		" 1    L       1 5.0",
		" 2    D       2 99.0",
		"FBAN",
		"99999",
	}, "\n")

	sink := diag.NewSink()
	cur := newLineCursor(body)
	banks := parseShuntBankSection(cur, "   10", sink)

	require.Len(t, banks, 1)
	sb := banks[0]
	assert.Equal(t, 10, sb.FromBus)
	assert.Nil(t, sb.ToBus)
	assert.Equal(t, "C", sb.ControlMode)
	assert.Equal(t, 10, sb.TerminalBus)
	require.Len(t, sb.Banks, 2)

	// Only the connected group contributes: 1 unit x 5.0.
	assert.Equal(t, 5.0, sb.TotalShunt)
	assert.Equal(t, domain.Disconnected, sb.Banks[1].State)
	assert.Equal(t, 2, sb.Banks[1].UnitsInOperation)
	assert.Equal(t, 99.0, sb.Banks[1].UnitReactivePower)

	// The sentinel stays unconsumed for the section scanner.
	next, ok := cur.Peek()
	require.True(t, ok)
	assert.Equal(t, "99999", next)
	assert.Zero(t, sink.Count())
}

func TestParseShuntBankSection_TerminalBusOverride(t *testing.T) {
	header := "   10" + strings.Repeat(" ", 41) + "20"
	body := strings.Join([]string{
		" 1    L       3 2.0",
		"FBAN",
		"99999",
	}, "\n")

	sink := diag.NewSink()
	banks := parseShuntBankSection(newLineCursor(body), header, sink)

	require.Len(t, banks, 1)
	assert.Equal(t, 10, banks[0].FromBus)
	assert.Equal(t, 20, banks[0].TerminalBus)
	assert.Equal(t, 6.0, banks[0].TotalShunt)
}

func TestParseShuntBankSection_MultipleBlocks(t *testing.T) {
	body := strings.Join([]string{
		" 1    L       1 5.0",
		"FBAN",
		"(comment between blocks",
		"   20",
		" 1    L       2 3.0",
		"FBAN",
		"99999",
	}, "\n")

	sink := diag.NewSink()
	banks := parseShuntBankSection(newLineCursor(body), "   10", sink)

	require.Len(t, banks, 2)
	assert.Equal(t, 10, banks[0].FromBus)
	assert.Equal(t, 5.0, banks[0].TotalShunt)
	assert.Equal(t, 20, banks[1].FromBus)
	assert.Equal(t, 6.0, banks[1].TotalShunt)
}

func TestParseShuntBankSection_TruncatedBlock(t *testing.T) {
	// Input ends mid-block, before any FBAN terminator.
	body := strings.Join([]string{
		" 1    L       1 5.0",
		" 2    L       2 3.0",
	}, "\n")

	sink := diag.NewSink()
	banks := parseShuntBankSection(newLineCursor(body), "   10", sink)

	require.Len(t, banks, 1)
	require.Len(t, banks[0].Banks, 2)
	assert.Equal(t, 11.0, banks[0].TotalShunt)
}

func TestParseShuntBankSection_SentinelAsHeader(t *testing.T) {
	sink := diag.NewSink()
	banks := parseShuntBankSection(newLineCursor(""), "99999", sink)
	assert.Empty(t, banks)
}

func TestParseShuntBankSection_MalformedBankLine(t *testing.T) {
	body := strings.Join([]string{
		"XX    L       1 5.0",
		" 1    L       1 5.0",
		"FBAN",
		"99999",
	}, "\n")

	sink := diag.NewSink()
	banks := parseShuntBankSection(newLineCursor(body), "   10", sink)

	require.Len(t, banks, 1)
	require.Len(t, banks[0].Banks, 1)
	assert.Equal(t, 5.0, banks[0].TotalShunt)
	assert.Equal(t, 1, sink.Count())
}

func TestParseBankLine_Defaults(t *testing.T) {
	b, err := parseBankLine("")
	require.NoError(t, err)
	assert.Equal(t, 1, b.GroupID)
	assert.Equal(t, domain.Connected, b.State)
	assert.Equal(t, 1, b.UnitsInOperation)
	assert.Zero(t, b.UnitReactivePower)
}
