// Package export writes a parsed Document to the structured dump formats:
// indented JSON, per-record-kind CSV files, and a multi-sheet workbook.
package export

import (
	"encoding/json"
	"io"

	"pwfconv/internal/domain"
)

// WriteJSON writes the full document as indented JSON. Section keys follow
// the input file's section tags so the dump reads side by side with the
// source case.
func WriteJSON(w io.Writer, doc *domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}
