package anarede

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"pwfconv/internal/domain"
)

// DecodeText converts raw case-file bytes to a string. Valid UTF-8 passes
// through; anything else is decoded as Latin-1, which covers the legacy
// cp1252/ISO-8859-1 files still in circulation.
func DecodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUndecodableFile, err)
	}
	return string(out), nil
}
