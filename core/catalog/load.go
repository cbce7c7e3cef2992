// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

// Format is the on-disk encoding of a catalog.
type Format string

// Supported catalog formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf returns the catalog format for a file name.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true
	case ".yaml", ".yml":
		return YAML, true
	default:
		return "", false
	}
}

// LanguageOf returns the language tag a catalog file stands for, i.e. its name without extension.
func LanguageOf(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads and parses the catalog at path.
//
// The file must exist; creating the catalog directory and the default catalog
// is the job of package bootstrap.
func Load(path string) (*Catalog, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- catalog paths come from the configured catalog directory
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	c, err := Parse(LanguageOf(path), data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c.Path = path

	return c, nil
}

// Parse parses catalog data of the given format.
func Parse(language string, data []byte, format Format) (*Catalog, error) {
	if err := ValidateLanguage(language); err != nil {
		return nil, err
	}

	switch format {
	case JSON:
		return ParseJSON(language, data)
	case YAML:
		return ParseYAML(language, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ParseJSON parses a JSON catalog, keeping keys in document order.
func ParseJSON(language string, data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyCatalog
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedCatalog)
	}

	root := gjson.ParseBytes(data)

	switch {
	case root.Type == gjson.Null:
		return nil, ErrEmptyCatalog
	case !root.IsObject():
		return nil, fmt.Errorf("%w: root must be an object", ErrMalformedCatalog)
	}

	c := New(language)

	var err error

	root.ForEach(func(key, value gjson.Result) bool {
		var e Entry

		e, err = jsonEntry(key.String(), value)
		if err != nil {
			return false
		}

		c.add(e)

		return true
	})

	if err != nil {
		return nil, err
	}

	return c, nil
}

func jsonEntry(key string, value gjson.Result) (Entry, error) {
	if !IsMetadataKey(key) {
		if value.Type != gjson.String {
			return Entry{}, fmt.Errorf("%w: value of %q must be a string", ErrMalformedCatalog, key)
		}

		return Entry{Key: key, Template: value.Str}, nil
	}

	if !value.IsObject() {
		return Entry{}, fmt.Errorf("%w: value of %q must be an object", ErrMalformedCatalog, key)
	}

	meta := &Metadata{}

	var err error

	value.ForEach(func(field, fieldValue gjson.Result) bool {
		switch field.String() {
		case "no_f_string":
			switch fieldValue.Type {
			case gjson.True, gjson.False:
				meta.NoFString = fieldValue.Bool()
			case gjson.Null:
			default:
				err = fmt.Errorf("%w: %s.no_f_string must be a boolean", ErrMalformedCatalog, key)
			}
		case "placeholders":
			meta.Placeholders, err = jsonPlaceholders(key, fieldValue)
		}

		return err == nil
	})

	if err != nil {
		return Entry{}, err
	}

	return Entry{Key: key, Metadata: meta}, nil
}

func jsonPlaceholders(key string, value gjson.Result) ([]Placeholder, error) {
	if value.Type == gjson.Null {
		return nil, nil
	}

	if !value.IsObject() {
		return nil, fmt.Errorf("%w: %s.placeholders must be an object", ErrMalformedCatalog, key)
	}

	var (
		out []Placeholder
		err error
	)

	value.ForEach(func(name, decl gjson.Result) bool {
		if !decl.IsObject() {
			err = fmt.Errorf("%w: %s.placeholders.%s must be an object", ErrMalformedCatalog, key, name.String())

			return false
		}

		p := Placeholder{Name: name.String()}

		for _, f := range []struct {
			field string
			dst   *string
		}{{"type", &p.Type}, {"format", &p.Format}} {
			v := decl.Get(f.field)

			switch v.Type {
			case gjson.String:
				*f.dst = v.Str
			case gjson.Null:
			default:
				err = fmt.Errorf("%w: %s.placeholders.%s.%s must be a string", ErrMalformedCatalog, key, p.Name, f.field)

				return false
			}
		}

		out = appendPlaceholder(out, p)

		return true
	})

	return out, err
}

// appendPlaceholder appends p, replacing an earlier declaration with the same name.
func appendPlaceholder(list []Placeholder, p Placeholder) []Placeholder {
	for i := range list {
		if list[i].Name == p.Name {
			list[i] = p

			return list
		}
	}

	return append(list, p)
}

// ParseYAML parses a YAML catalog, keeping keys in document order.
func ParseYAML(language string, data []byte) (*Catalog, error) {
	var root any

	if err := yaml.UnmarshalWithOptions(data, &root, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCatalog, err)
	}

	if root == nil {
		return nil, ErrEmptyCatalog
	}

	items, ok := root.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: root must be a mapping", ErrMalformedCatalog)
	}

	c := New(language)

	for _, item := range items {
		key, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: key %v must be a string", ErrMalformedCatalog, item.Key)
		}

		e, err := yamlEntry(key, item.Value)
		if err != nil {
			return nil, err
		}

		c.add(e)
	}

	return c, nil
}

func yamlEntry(key string, value any) (Entry, error) {
	if !IsMetadataKey(key) {
		template, ok := value.(string)
		if !ok {
			return Entry{}, fmt.Errorf("%w: value of %q must be a string", ErrMalformedCatalog, key)
		}

		return Entry{Key: key, Template: template}, nil
	}

	fields, ok := value.(yaml.MapSlice)
	if !ok {
		return Entry{}, fmt.Errorf("%w: value of %q must be a mapping", ErrMalformedCatalog, key)
	}

	meta := &Metadata{}

	for _, field := range fields {
		switch field.Key {
		case "no_f_string":
			switch v := field.Value.(type) {
			case bool:
				meta.NoFString = v
			case nil:
			default:
				return Entry{}, fmt.Errorf("%w: %s.no_f_string must be a boolean", ErrMalformedCatalog, key)
			}
		case "placeholders":
			placeholders, err := yamlPlaceholders(key, field.Value)
			if err != nil {
				return Entry{}, err
			}

			meta.Placeholders = placeholders
		}
	}

	return Entry{Key: key, Metadata: meta}, nil
}

func yamlPlaceholders(key string, value any) ([]Placeholder, error) {
	if value == nil {
		return nil, nil
	}

	decls, ok := value.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: %s.placeholders must be a mapping", ErrMalformedCatalog, key)
	}

	var out []Placeholder

	for _, decl := range decls {
		name, _ := decl.Key.(string)

		fields, ok := decl.Value.(yaml.MapSlice)
		if !ok {
			return nil, fmt.Errorf("%w: %s.placeholders.%s must be a mapping", ErrMalformedCatalog, key, name)
		}

		p := Placeholder{Name: name}

		for _, field := range fields {
			var dst *string

			switch field.Key {
			case "type":
				dst = &p.Type
			case "format":
				dst = &p.Format
			default:
				continue
			}

			switch v := field.Value.(type) {
			case string:
				*dst = v
			case nil:
			default:
				return nil, fmt.Errorf("%w: %s.placeholders.%s.%v must be a string", ErrMalformedCatalog, key, name, field.Key)
			}
		}

		out = appendPlaceholder(out, p)
	}

	return out, nil
}
