package anarede

import (
	"strings"

	"pwfconv/internal/diag"
	"pwfconv/internal/domain"
	"pwfconv/internal/schema"
)

const (
	sectionSentinel      = "99999"
	sectionSentinelValue = 99999
	documentTerminator   = "FIM"
	commentPrefix        = "("
)

// StatusParsed is the metadata status of a successfully scanned document.
const StatusParsed = "parsed"

// Scanner is the top-level section state machine. It recognizes headers and
// sentinels, routes data lines to the record parsers, and assembles the
// Document. Individual line failures are warnings; scanning never aborts.
type Scanner struct {
	records *RecordParser
	diag    *diag.Sink

	supported  map[domain.SectionTag]bool
	recognized map[domain.SectionTag]bool
}

// NewScanner creates a Scanner over a schema registry and a warning sink.
func NewScanner(reg *schema.Registry, d *diag.Sink) *Scanner {
	supported := make(map[domain.SectionTag]bool, len(domain.SupportedSections))
	recognized := make(map[domain.SectionTag]bool)
	for _, t := range domain.SupportedSections {
		supported[t] = true
		recognized[t] = true
	}
	for _, t := range domain.UnsupportedSections {
		recognized[t] = true
	}
	return &Scanner{
		records:    NewRecordParser(reg),
		diag:       d,
		supported:  supported,
		recognized: recognized,
	}
}

// Scan parses the decoded case text into a Document. source is recorded in
// the document metadata as the origin identifier.
func (s *Scanner) Scan(text, source string) *domain.Document {
	doc := domain.NewDocument(source)
	cur := newLineCursor(text)

	var current domain.SectionTag // "" means no section

	for {
		line, ok := cur.Next()
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)

		if trimmed == documentTerminator {
			break
		}
		if trimmed == sectionSentinel {
			current = ""
			continue
		}
		if s.recognized[domain.SectionTag(trimmed)] {
			current = domain.SectionTag(trimmed)
			if !s.supported[current] {
				s.diag.Warnf("skipping section %s (not supported)", current)
			}
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) {
			continue
		}

		switch {
		case current == "":
			// data outside any section is discarded
		case current == domain.SectionTitle:
			doc.Title = trimmed
			doc.Metadata.Title = trimmed
			current = ""
		case !s.supported[current]:
			// recognized but unsupported section body
		default:
			if err := s.routeLine(doc, cur, current, line); err != nil {
				s.diag.Warnf("error parsing line %d in section %s: %v",
					cur.LineNum(), current, err)
			}
			if current == domain.SectionShuntBank {
				// the block parser consumed through end of section
				current = ""
			}
		}
	}

	doc.Metadata.Status = StatusParsed
	return doc
}

// routeLine dispatches a data line to the parser for the current section.
func (s *Scanner) routeLine(doc *domain.Document, cur *lineCursor, tag domain.SectionTag, line string) error {
	switch tag {
	case domain.SectionBus:
		rec, err := s.records.ParseBus(line)
		if err != nil {
			return err
		}
		if doc.BusByNumber(rec.Number) != nil {
			s.diag.Warnf("duplicate bus number %d on line %d; keeping the first record",
				rec.Number, cur.LineNum())
		}
		doc.AddBus(rec)
	case domain.SectionLine:
		rec, err := s.records.ParseLine(line)
		if err != nil {
			return err
		}
		doc.Lines = append(doc.Lines, rec)
	case domain.SectionGenerator:
		rec, err := s.records.ParseGenerator(line)
		if err != nil {
			return err
		}
		doc.Generators = append(doc.Generators, rec)
	case domain.SectionSeriesCompensator:
		rec, err := s.records.ParseSeriesCompensator(line)
		if err != nil {
			return err
		}
		doc.SeriesCompensators = append(doc.SeriesCompensators, rec)
	case domain.SectionReactiveCompensator:
		rec, err := s.records.ParseReactiveCompensator(line)
		if err != nil {
			return err
		}
		doc.ReactiveCompensators = append(doc.ReactiveCompensators, rec)
	case domain.SectionShuntBank:
		doc.ShuntBanks = append(doc.ShuntBanks, parseShuntBankSection(cur, line, s.diag)...)
	case domain.SectionShuntDevice:
		rec, err := s.records.ParseShuntDevice(line)
		if err != nil {
			return err
		}
		doc.ShuntDevices = append(doc.ShuntDevices, rec)
	}
	return nil
}
