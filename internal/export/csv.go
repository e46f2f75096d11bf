package export

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"pwfconv/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// busColumns defines the bus CSV header row.
var busColumns = []string{
	"Number",
	"State",
	"Type",
	"Name",
	"Voltage",
	"Angle",
	"Active Generation",
	"Reactive Generation",
	"Min Reactive Generation",
	"Max Reactive Generation",
	"Controlled Bus",
	"Active Load",
	"Reactive Load",
	"Capacitor Reactor",
	"Area",
}

// lineColumns defines the line CSV header row.
var lineColumns = []string{
	"From Bus",
	"To Bus",
	"Circuit",
	"State",
	"Resistance",
	"Reactance",
	"Susceptance",
	"Tap",
	"Tap Min",
	"Tap Max",
	"Phase Shift",
	"Normal Capacity",
	"Emergency Capacity",
}

// BusWriter wraps csv.Writer for exporting bus records as CSV.
type BusWriter struct {
	csv *csv.Writer
}

// NewBusWriter creates a BusWriter that writes CSV to w.
func NewBusWriter(w io.Writer) *BusWriter {
	return &BusWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the bus header row.
func (w *BusWriter) WriteHeader() error {
	return w.csv.Write(busColumns)
}

// WriteBuses converts the document's buses to CSV rows and writes them.
func (w *BusWriter) WriteBuses(buses []domain.Bus) error {
	for i := range buses {
		if err := w.csv.Write(busToRow(&buses[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *BusWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *BusWriter) Error() error {
	return w.csv.Error()
}

func busToRow(b *domain.Bus) []string {
	return []string{
		strconv.Itoa(b.Number),
		string(b.State),
		strconv.Itoa(b.Type),
		b.Name,
		formatReal(b.Voltage),
		formatReal(b.Angle),
		formatReal(b.ActiveGen),
		formatReal(b.ReactiveGen),
		formatReal(b.MinReactiveGen),
		formatReal(b.MaxReactiveGen),
		strconv.Itoa(b.ControlledBus),
		formatReal(b.ActiveLoad),
		formatReal(b.ReactiveLoad),
		formatReal(b.CapacitorReactor),
		strconv.Itoa(b.Area),
	}
}

// LineWriter wraps csv.Writer for exporting line records as CSV.
type LineWriter struct {
	csv *csv.Writer
}

// NewLineWriter creates a LineWriter that writes CSV to w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the line header row.
func (w *LineWriter) WriteHeader() error {
	return w.csv.Write(lineColumns)
}

// WriteLines converts the document's lines to CSV rows and writes them.
func (w *LineWriter) WriteLines(lines []domain.Line) error {
	for i := range lines {
		if err := w.csv.Write(lineToRow(&lines[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *LineWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *LineWriter) Error() error {
	return w.csv.Error()
}

func lineToRow(l *domain.Line) []string {
	return []string{
		strconv.Itoa(l.FromBus),
		strconv.Itoa(l.ToBus),
		strconv.Itoa(l.Circuit),
		string(l.State),
		formatReal(l.Resistance),
		formatReal(l.Reactance),
		formatReal(l.Susceptance),
		l.Tap,
		formatReal(l.TapMin),
		formatReal(l.TapMax),
		formatReal(l.PhaseShift),
		formatReal(l.NormalCapacity),
		formatReal(l.EmergencyCapacity),
	}
}

func formatReal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a case-file name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized download filename derived from the
// uploaded case file's name, with the given extension.
func BuildFilename(source, ext string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	sanitized := SanitizeFilename(base)
	if sanitized == "" {
		sanitized = "case"
	}
	return sanitized + "." + ext
}
