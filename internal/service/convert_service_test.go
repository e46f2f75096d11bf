package service_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pwfconv/internal/config"
	"pwfconv/internal/domain"
	"pwfconv/internal/schema"
	"pwfconv/internal/service"
)

const sampleCase = `TITU
IEEE test case
DBAR
   10 L2 0BUS-10        1000   0900.0  0.0                200.0 50.0       1
   30 L1 0BUS-30        1000
99999
DLIN
   10       30 1L      5.34 10.0  2.5
99999
DBSH
   10
 1    L       1 5.0
FBAN
99999
FIM
`

func newTestService(t *testing.T) service.ConvertService {
	t.Helper()
	reg, err := schema.Load("")
	require.NoError(t, err)
	return service.NewConvertService(reg, &config.ConvertConfig{
		MaxFileSizeMB: 50,
		DefaultFormat: "json",
	})
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "DAT", "csv", "Xlsx"} {
		_, err := service.ParseFormat(name)
		assert.NoError(t, err, name)
	}

	_, err := service.ParseFormat("pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestConvertBytes(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.ConvertBytes([]byte(sampleCase), "sample.pwf")
	require.NoError(t, err)

	doc := res.Document
	assert.Equal(t, "IEEE test case", doc.Title)
	assert.Len(t, doc.Buses, 2)
	assert.Len(t, doc.Lines, 1)
	assert.NotEmpty(t, doc.Metadata.ConversionID)

	// The shunt bank total is folded into its terminal bus.
	require.NotNil(t, doc.BusByNumber(10))
	assert.Equal(t, 5.0, doc.BusByNumber(10).CapacitorReactor)
	assert.Empty(t, res.Warnings)
}

func TestConvertFile(t *testing.T) {
	svc := newTestService(t)
	path := filepath.Join(t.TempDir(), "case.pwf")
	require.NoError(t, os.WriteFile(path, []byte(sampleCase), 0o644))

	res, err := svc.ConvertFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Document.Metadata.Source)
}

func TestConvertFile_Missing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ConvertFile(filepath.Join(t.TempDir(), "nope.pwf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestConvertBytes_TooLarge(t *testing.T) {
	reg, err := schema.Load("")
	require.NoError(t, err)
	svc := service.NewConvertService(reg, &config.ConvertConfig{MaxFileSizeMB: 0})

	// The limit applies to in-memory input too, not just files read from
	// disk; uploads arrive through this path.
	_, err = svc.ConvertBytes([]byte(sampleCase), "upload.pwf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestConvertFile_TooLarge(t *testing.T) {
	reg, err := schema.Load("")
	require.NoError(t, err)
	svc := service.NewConvertService(reg, &config.ConvertConfig{MaxFileSizeMB: 0})

	path := filepath.Join(t.TempDir(), "case.pwf")
	require.NoError(t, os.WriteFile(path, []byte(sampleCase), 0o644))

	_, err = svc.ConvertFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestRender(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.ConvertBytes([]byte(sampleCase), "sample.pwf")
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.Render(&buf, res.Document, service.FormatJSON))
		assert.Contains(t, buf.String(), `"DBAR"`)
	})

	t.Run("dat", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.Render(&buf, res.Document, service.FormatDAT))
		assert.Contains(t, buf.String(), "param BASE := 100;")
		assert.Contains(t, buf.String(), "0.0534000")
	})

	t.Run("csv_is_not_a_stream_format", func(t *testing.T) {
		var buf bytes.Buffer
		err := svc.Render(&buf, res.Document, service.FormatCSV)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownFormat)
	})
}

func TestRenderFiles(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.ConvertBytes([]byte(sampleCase), "sample.pwf")
	require.NoError(t, err)
	dir := t.TempDir()

	t.Run("dat", func(t *testing.T) {
		out := filepath.Join(dir, "case.dat")
		paths, err := svc.RenderFiles(out, res.Document, service.FormatDAT)
		require.NoError(t, err)
		assert.Equal(t, []string{out}, paths)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "param: DLIN:")
	})

	t.Run("csv_splits_per_kind", func(t *testing.T) {
		out := filepath.Join(dir, "case.csv")
		paths, err := svc.RenderFiles(out, res.Document, service.FormatCSV)
		require.NoError(t, err)
		require.Len(t, paths, 2)
		assert.True(t, strings.HasSuffix(paths[0], "case_buses.csv"))
		assert.True(t, strings.HasSuffix(paths[1], "case_lines.csv"))

		data, err := os.ReadFile(paths[0])
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	})

	t.Run("xlsx", func(t *testing.T) {
		out := filepath.Join(dir, "case.xlsx")
		paths, err := svc.RenderFiles(out, res.Document, service.FormatXLSX)
		require.NoError(t, err)
		require.Len(t, paths, 1)

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	})
}
