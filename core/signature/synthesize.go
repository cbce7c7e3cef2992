// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package signature

import (
	"go/token"
	"strings"

	"github.com/ncruces/go-strftime"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/locallang/core/catalog"
	"codeberg.org/pixivfe/locallang/core/placeholder"
)

// Options controls accessor synthesis.
type Options struct {
	// Mode selects how placeholders are recognised in templates.
	Mode placeholder.Mode
}

// FunctionName returns the accessor function name for key.
func FunctionName(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), " ", "_")
}

// MethodName returns the exported Go identifier for a function name,
// e.g. "welcome_back" becomes "WelcomeBack".
func MethodName(name string) (string, error) {
	var (
		sb    strings.Builder
		caser = cases.Title(language.Und, cases.NoLower)
	)

	for part := range strings.SplitSeq(name, "_") {
		sb.WriteString(caser.String(part))
	}

	method := sb.String()
	if !token.IsIdentifier(method) || !token.IsExported(method) {
		return "", ErrInvalidKey
	}

	return method, nil
}

// Resolve returns the metadata that applies to key: the one from the
// language catalog if present, else the default catalog's, else nil.
func Resolve(key string, lang, fallback *catalog.Catalog) *catalog.Metadata {
	if lang != nil {
		if meta := lang.Metadata(key); meta != nil {
			return meta
		}
	}

	if fallback != nil {
		return fallback.Metadata(key)
	}

	return nil
}

// Synthesize builds the accessor for one key.
//
// Declared placeholders come first, in declaration order; placeholders found
// only in the template follow in order of first appearance and accept any value.
// Declared placeholders missing from the template still become parameters.
func Synthesize(key, template string, meta *catalog.Metadata, opts Options) (*Accessor, error) {
	name := FunctionName(key)

	method, err := MethodName(name)
	if err != nil {
		return nil, &KeyError{Key: key, Err: err}
	}

	a := &Accessor{
		Key:    key,
		Name:   name,
		Method: method,
	}

	declared := make(map[string]struct{})

	if meta != nil {
		for _, decl := range meta.Placeholders {
			p, err := declaredParam(key, decl)
			if err != nil {
				return nil, err
			}

			declared[p.Name] = struct{}{}
			a.Params = append(a.Params, p)
		}
	}

	for _, inferred := range placeholder.Extract(template, declared, opts.Mode) {
		if placeholder.IsReserved(inferred) {
			return nil, &KeyError{Key: key, Placeholder: inferred, Err: ErrReservedPlaceholderName}
		}

		if !placeholder.IsValidName(inferred) {
			return nil, &KeyError{Key: key, Placeholder: inferred, Err: ErrInvalidPlaceholderName}
		}

		a.Params = append(a.Params, Param{Name: inferred, Type: placeholder.Any})
	}

	a.Render = Render{Mode: Interpolate, Template: template}

	if meta != nil && meta.NoFString {
		a.Render.Mode = Replace
	} else {
		a.Render.Segments = placeholder.Interpolate(template, func(s string) bool {
			_, ok := a.Param(s)

			return ok
		})
	}

	return a, nil
}

func declaredParam(key string, decl catalog.Placeholder) (Param, error) {
	// A declaration without a type is as unsupported as an unknown one.
	typ, ok := placeholder.ParseType(decl.Type)
	if !ok {
		return Param{}, &KeyError{Key: key, Placeholder: decl.Name, Value: decl.Type, Err: ErrUnsupportedPlaceholderType}
	}

	if placeholder.IsReserved(decl.Name) {
		return Param{}, &KeyError{Key: key, Placeholder: decl.Name, Err: ErrReservedPlaceholderName}
	}

	if !placeholder.IsValidName(decl.Name) {
		return Param{}, &KeyError{Key: key, Placeholder: decl.Name, Err: ErrInvalidPlaceholderName}
	}

	p := Param{Name: decl.Name, Type: typ, Declared: true}

	if typ.Temporal() {
		if decl.Format == "" {
			return Param{}, &KeyError{Key: key, Placeholder: decl.Name, Err: ErrMissingDateFormat}
		}

		layout, err := strftime.Layout(decl.Format)
		if err != nil {
			return Param{}, &KeyError{Key: key, Placeholder: decl.Name, Value: decl.Format, Err: ErrInvalidDateFormat}
		}

		p.Format = &FormatStep{Pattern: decl.Format, Layout: layout}
	}

	return p, nil
}
