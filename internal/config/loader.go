package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"context-generator/internal/directive"
)

var (
	// ErrVersion reports an unsupported file version.
	ErrVersion = errors.New("unsupported config version")
	// ErrInvalid reports a structurally invalid file.
	ErrInvalid = errors.New("invalid config")
)

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File and validates it.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}
}

// Validate checks the file version, record names and that every override
// parses as a directive.
func (f *File) Validate() error {
	if f.Version != CurrentVersion {
		return fmt.Errorf("%w: %q", ErrVersion, f.Version)
	}

	seen := make(map[string]bool, len(f.Records))
	for i := range f.Records {
		r := &f.Records[i]
		if r.Type == "" {
			return fmt.Errorf("%w: records[%d] has no type", ErrInvalid, i)
		}
		if seen[r.Type] {
			return fmt.Errorf("%w: record %s listed twice", ErrInvalid, r.Type)
		}
		seen[r.Type] = true

		overrides := r.Overrides()
		for _, field := range slices.Sorted(maps.Keys(overrides)) {
			if _, err := directive.Parse(overrides[field]); err != nil {
				return fmt.Errorf("%w: %s.%s: %w", ErrInvalid, r.Type, field, err)
			}
		}
	}

	return nil
}

// Record returns the overrides for the named type, or nil.
func (f *File) Record(typeName string) *Record {
	if f == nil {
		return nil
	}
	for i := range f.Records {
		if f.Records[i].Type == typeName {
			return &f.Records[i]
		}
	}

	return nil
}

// Types returns the record type names in file order.
func (f *File) Types() []string {
	if f == nil {
		return nil
	}

	names := make([]string, 0, len(f.Records))
	for _, r := range f.Records {
		names = append(names, r.Type)
	}

	return names
}

// Overrides returns the directive text for every field the record mentions,
// keyed by Go field name. Full directives win over shorthands.
func (r *Record) Overrides() map[string]string {
	if r == nil {
		return nil
	}

	out := make(map[string]string)
	for _, name := range r.Skip {
		out[name] = directive.Directives{Skip: true}.String()
	}
	for _, name := range r.Flatten {
		out[name] = directive.Directives{Flatten: true}.String()
	}
	for name, external := range r.Rename {
		out[name] = directive.Directives{Rename: external}.String()
	}
	maps.Copy(out, r.Fields)

	return out
}

// FieldNames returns the sorted Go field names the record mentions.
func (r *Record) FieldNames() []string {
	return slices.Sorted(maps.Keys(r.Overrides()))
}
