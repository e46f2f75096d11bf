// Package schema holds the declarative field layout for every fixed-column
// record kind. Column positions live in a sidecar YAML file so format
// revisions are data changes, not code changes; a built-in copy is embedded
// for the common case of running without a sidecar.
package schema

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pwfconv/internal/domain"
)

//go:embed default_schema.yaml
var defaultSchemaYAML []byte

// FieldType is the declared type of a fixed-column field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeReal    FieldType = "real"
)

// FieldSpec describes one field of a record kind: a 1-based inclusive column
// range, a declared type, and the default used when the field is blank or
// unparsable. The range may exceed the physical line length.
type FieldSpec struct {
	Name    string    `yaml:"name"`
	Start   int       `yaml:"start"`
	End     int       `yaml:"end"`
	Type    FieldType `yaml:"type"`
	Default any       `yaml:"default"`
}

// RecordSchema is the ordered field list for one record kind.
type RecordSchema struct {
	MinLength int         `yaml:"min_length"`
	Fields    []FieldSpec `yaml:"fields"`
}

// Registry holds the immutable record schemas keyed by section tag. It is
// loaded once at startup and never mutated.
type Registry struct {
	schemas map[domain.SectionTag]RecordSchema
}

// Load reads a schema registry from the sidecar file at path, or from the
// embedded default when path is empty. A missing or invalid sidecar is a
// startup error; the registry never silently degrades to an empty schema.
func Load(path string) (*Registry, error) {
	data := defaultSchemaYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading schema file %s: %w", path, err)
		}
	}
	return Parse(data)
}

// Parse decodes and validates schema YAML.
func Parse(data []byte) (*Registry, error) {
	raw := map[domain.SectionTag]RecordSchema{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchemaInvalid, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no record kinds defined", domain.ErrSchemaInvalid)
	}
	for tag, rs := range raw {
		for i := range rs.Fields {
			f := &rs.Fields[i]
			if err := validateField(tag, f); err != nil {
				return nil, err
			}
			normalizeDefault(f)
		}
		raw[tag] = rs
	}
	return &Registry{schemas: raw}, nil
}

// Schema returns the record schema for a section tag.
func (r *Registry) Schema(tag domain.SectionTag) (RecordSchema, bool) {
	rs, ok := r.schemas[tag]
	return rs, ok
}

func validateField(tag domain.SectionTag, f *FieldSpec) error {
	if f.Name == "" {
		return fmt.Errorf("%w: %s has an unnamed field", domain.ErrSchemaInvalid, tag)
	}
	if f.Start < 1 || f.End < f.Start {
		return fmt.Errorf("%w: %s.%s has column range %d-%d",
			domain.ErrSchemaInvalid, tag, f.Name, f.Start, f.End)
	}
	switch f.Type {
	case TypeString, TypeInteger, TypeReal:
		return nil
	default:
		return fmt.Errorf("%w: %s.%s has unknown type %q",
			domain.ErrSchemaInvalid, tag, f.Name, f.Type)
	}
}

// normalizeDefault coerces the YAML-decoded default to the field's declared
// type so extraction can hand it back without further conversion.
func normalizeDefault(f *FieldSpec) {
	switch f.Type {
	case TypeString:
		switch v := f.Default.(type) {
		case string:
			f.Default = v
		case nil:
			f.Default = ""
		default:
			f.Default = fmt.Sprintf("%v", v)
		}
	case TypeInteger:
		switch v := f.Default.(type) {
		case int:
			f.Default = v
		case float64:
			f.Default = int(v)
		default:
			f.Default = 0
		}
	case TypeReal:
		switch v := f.Default.(type) {
		case float64:
			f.Default = v
		case int:
			f.Default = float64(v)
		default:
			f.Default = 0.0
		}
	}
}
