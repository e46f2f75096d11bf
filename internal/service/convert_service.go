package service

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pwfconv/internal/ampl"
	"pwfconv/internal/anarede"
	"pwfconv/internal/config"
	"pwfconv/internal/diag"
	"pwfconv/internal/domain"
	"pwfconv/internal/export"
	"pwfconv/internal/integrate"
	"pwfconv/internal/schema"
)

// Format selects a conversion output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatDAT  Format = "dat"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name from user input.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatDAT, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownFormat, s)
	}
}

// Result is the outcome of one conversion: the enriched document plus the
// warnings collected along the way.
type Result struct {
	Document *domain.Document
	Warnings []string
}

// ConvertService defines the conversion contract.
type ConvertService interface {
	ConvertFile(path string) (*Result, error)
	ConvertBytes(data []byte, source string) (*Result, error)
	Render(w io.Writer, doc *domain.Document, format Format) error
	RenderFiles(outPath string, doc *domain.Document, format Format) ([]string, error)
}

type convertService struct {
	reg *schema.Registry
	cfg *config.ConvertConfig
}

// NewConvertService creates a ConvertService over a loaded schema registry.
func NewConvertService(reg *schema.Registry, cfg *config.ConvertConfig) ConvertService {
	return &convertService{reg: reg, cfg: cfg}
}

// ConvertFile reads, decodes, scans, and integrates a case file from disk.
func (s *convertService) ConvertFile(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
	}
	if maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024; info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.ConvertBytes(data, path)
}

// ConvertBytes runs the conversion pipeline on in-memory case text. The
// integration passes run exactly once here; the returned document is final.
func (s *convertService) ConvertBytes(data []byte, source string) (*Result, error) {
	if maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024; int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, len(data))
	}
	text, err := anarede.DecodeText(data)
	if err != nil {
		return nil, err
	}

	sink := diag.NewSink()
	doc := anarede.NewScanner(s.reg, sink).Scan(text, source)
	integrate.NewEngine(sink).Run(doc)
	doc.Metadata.ConversionID = uuid.New().String()

	log.Printf("convertService.ConvertBytes: %s: %d buses, %d lines, %d warnings (conversion %s)",
		source, len(doc.Buses), len(doc.Lines), sink.Count(), doc.Metadata.ConversionID)

	return &Result{Document: doc, Warnings: sink.Warnings()}, nil
}

// Render writes the document to w in a stream format (json or dat).
func (s *convertService) Render(w io.Writer, doc *domain.Document, format Format) error {
	switch format {
	case FormatJSON:
		return export.WriteJSON(w, doc)
	case FormatDAT:
		return ampl.NewWriter(w).WriteDocument(doc)
	default:
		return fmt.Errorf("%w: %q is not a stream format", domain.ErrUnknownFormat, format)
	}
}

// RenderFiles writes the document to files derived from outPath and returns
// the paths written. CSV produces one file per tabular record kind; the
// other formats produce outPath itself.
func (s *convertService) RenderFiles(outPath string, doc *domain.Document, format Format) ([]string, error) {
	switch format {
	case FormatJSON, FormatDAT:
		f, err := os.Create(outPath)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		if err := s.Render(f, doc, format); err != nil {
			return nil, err
		}
		return []string{outPath}, nil

	case FormatCSV:
		base := strings.TrimSuffix(outPath, filepath.Ext(outPath))
		busPath := base + "_buses.csv"
		linePath := base + "_lines.csv"
		if err := writeBusCSV(busPath, doc); err != nil {
			return nil, err
		}
		if err := writeLineCSV(linePath, doc); err != nil {
			return nil, err
		}
		return []string{busPath, linePath}, nil

	case FormatXLSX:
		f, err := os.Create(outPath)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		if err := export.WriteXLSX(f, doc); err != nil {
			return nil, err
		}
		return []string{outPath}, nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}
}

func writeBusCSV(path string, doc *domain.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Write(export.BOM); err != nil {
		return err
	}
	w := export.NewBusWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteBuses(doc.Buses); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeLineCSV(path string, doc *domain.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Write(export.BOM); err != nil {
		return err
	}
	w := export.NewLineWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteLines(doc.Lines); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
