// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package signature turns catalog entries into accessor definitions.

An [Accessor] describes one generated function: its name, its ordered
parameters (with their type, check and formatting step) and how the final
string is rendered. It does not depend on the syntax of the generated code;
package emit turns accessors into Go source.
*/
package signature

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"codeberg.org/pixivfe/locallang/core/placeholder"
)

// RenderMode selects how parameters are placed into a template.
type RenderMode int

const (
	// Interpolate renders the template segment by segment, substituting each reference.
	// "{{" and "}}" render as single braces.
	Interpolate RenderMode = iota

	// Replace keeps the template verbatim and replaces every "{name}" with the
	// string form of the parameter.
	Replace
)

// FormatStep converts a date/time value to a string before rendering.
type FormatStep struct {
	// Pattern is the strftime pattern from the catalog, e.g. "%Y-%m-%d".
	Pattern string
	// Layout is the Go reference layout equivalent to Pattern, e.g. "2006-01-02".
	Layout string
}

// Param is one accessor parameter.
type Param struct {
	Name string
	Type placeholder.Type
	// Declared is false for placeholders only found in the template.
	Declared bool
	// Format is set for date and time parameters.
	Format *FormatStep
}

// Check returns an error when v does not satisfy the type rule of p.
func (p Param) Check(v any) error {
	if !p.Type.Check(v) {
		return fmt.Errorf("%w: %s must be a %s, got %T", ErrTypeMismatch, p.Name, p.Type, v)
	}

	return nil
}

// Text returns the string form of v used for rendering. v must satisfy Check.
func (p Param) Text(v any) string {
	if p.Format != nil {
		if t, ok := v.(time.Time); ok {
			return t.Format(p.Format.Layout)
		}
	}

	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// Render is the plan used to build the final string.
type Render struct {
	Mode     RenderMode
	Template string
	// Segments holds the parsed template in Interpolate mode.
	Segments []placeholder.Segment
}

// Accessor is the definition of one generated accessor.
type Accessor struct {
	Key string
	// Name is the function name: the key lower-cased with spaces replaced by underscores.
	Name string
	// Method is the exported Go identifier derived from Name.
	Method string
	Params []Param
	Render Render
}

// Param returns the parameter called name.
func (a *Accessor) Param(name string) (Param, bool) {
	for _, p := range a.Params {
		if p.Name == name {
			return p, true
		}
	}

	return Param{}, false
}

// Execute renders the accessor in-process with the given arguments.
//
// It applies the same checks and formatting as generated code.
func (a *Accessor) Execute(args map[string]any) (string, error) {
	texts := make(map[string]string, len(a.Params))

	for _, p := range a.Params {
		v, ok := args[p.Name]
		if !ok {
			return "", &KeyError{Key: a.Key, Placeholder: p.Name, Err: ErrMissingArgument}
		}

		if err := p.Check(v); err != nil {
			return "", &KeyError{Key: a.Key, Placeholder: p.Name, Err: err}
		}

		texts[p.Name] = p.Text(v)
	}

	if a.Render.Mode == Replace {
		pairs := make([]string, 0, 2*len(a.Params))
		for _, p := range a.Params {
			pairs = append(pairs, "{"+p.Name+"}", texts[p.Name])
		}

		return strings.NewReplacer(pairs...).Replace(a.Render.Template), nil
	}

	var sb strings.Builder

	for _, s := range a.Render.Segments {
		if s.IsRef() {
			sb.WriteString(texts[s.Name])
		} else {
			sb.WriteString(s.Text)
		}
	}

	return sb.String(), nil
}
