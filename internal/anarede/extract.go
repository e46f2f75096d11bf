package anarede

import (
	"strconv"
	"strings"

	"pwfconv/internal/schema"
)

// Extract applies a field spec to a raw line and returns the typed value.
// The column range is 1-based and inclusive, clamped to the line length.
// A blank or unparsable field yields the schema default; extraction is a
// total function and never fails.
func Extract(line string, spec schema.FieldSpec) any {
	start := spec.Start - 1
	if start >= len(line) {
		return spec.Default
	}
	end := spec.End
	if end > len(line) {
		end = len(line)
	}
	raw := strings.TrimSpace(line[start:end])
	if raw == "" {
		return spec.Default
	}
	switch spec.Type {
	case schema.TypeString:
		return raw
	case schema.TypeInteger:
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	case schema.TypeReal:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return spec.Default
}
