// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package emit writes Go source for accessor definitions.

Every generated file belongs to the same package: one file per language holding
a value type with one method per translation, and one master file that
dispatches to the language chosen at run time.

Output depends only on its input, so regenerating unchanged catalogs produces
byte-identical files.
*/
package emit

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"codeberg.org/pixivfe/locallang/core/placeholder"
	"codeberg.org/pixivfe/locallang/core/signature"
)

// Header is the first line of every generated file.
const Header = "// Code generated by locallang. DO NOT EDIT."

// MasterFileName is the name of the generated dispatch file.
const MasterFileName = "localisation_gen.go"

// ErrNameCollision is returned when a generated identifier would clash with another one.
var ErrNameCollision = errors.New("generated name collision")

// Package-level identifiers of the master file.
var masterNames = map[string]struct{}{
	"DefaultLanguage":         {},
	"Languages":               {},
	"TranslationMissingError": {},
	"Localisation":            {},
	"New":                     {},
	"IsSupported":             {},
}

// FileName returns the name of the generated file for lang.
func FileName(lang string) string {
	return strings.ToLower(lang) + "_gen.go"
}

// TypeName returns the Go type generated for lang, e.g. "en_us" becomes "EnUs".
func TypeName(lang string) (string, error) {
	name, err := signature.MethodName(strings.ToLower(lang))
	if err != nil {
		return "", fmt.Errorf("language %q: %w", lang, err)
	}

	if _, ok := masterNames[name]; ok {
		return "", fmt.Errorf("%w: language %q maps to %s", ErrNameCollision, lang, name)
	}

	return name, nil
}

type importSet map[string]struct{}

func (s importSet) write(sb *strings.Builder) {
	if len(s) == 0 {
		return
	}

	paths := make([]string, 0, len(s))
	for path := range s {
		paths = append(paths, path)
	}

	slices.Sort(paths)

	sb.WriteString("import (\n")

	for _, path := range paths {
		fmt.Fprintf(sb, "\t%q\n", path)
	}

	sb.WriteString(")\n\n")
}

// goType returns the Go type of a parameter and records the import it needs.
func goType(t placeholder.Type, deps importSet) string {
	switch t {
	case placeholder.Int:
		return "int"
	case placeholder.Float:
		return "float64"
	case placeholder.Str:
		return "string"
	case placeholder.Bool:
		return "bool"
	case placeholder.DateTime, placeholder.Time:
		deps["time"] = struct{}{}

		return "time.Time"
	default:
		return "any"
	}
}

// textExpr returns the expression converting a parameter to its string form.
func textExpr(p signature.Param, deps importSet) string {
	if p.Format != nil {
		return p.Name + ".Format(" + strconv.Quote(p.Format.Layout) + ")"
	}

	switch p.Type {
	case placeholder.Str:
		return p.Name
	case placeholder.Int:
		deps["strconv"] = struct{}{}

		return "strconv.Itoa(" + p.Name + ")"
	case placeholder.Float:
		deps["strconv"] = struct{}{}

		return "strconv.FormatFloat(" + p.Name + ", 'g', -1, 64)"
	case placeholder.Bool:
		deps["strconv"] = struct{}{}

		return "strconv.FormatBool(" + p.Name + ")"
	default:
		deps["fmt"] = struct{}{}

		return "fmt.Sprint(" + p.Name + ")"
	}
}

// paramList returns the parameter list of a, e.g. "name any, count int".
func paramList(a *signature.Accessor, deps importSet) string {
	parts := make([]string, 0, len(a.Params))
	for _, p := range a.Params {
		parts = append(parts, p.Name+" "+goType(p.Type, deps))
	}

	return strings.Join(parts, ", ")
}

// argList returns the names of the parameters of a in order.
func argList(a *signature.Accessor) string {
	names := make([]string, 0, len(a.Params))
	for _, p := range a.Params {
		names = append(names, p.Name)
	}

	return strings.Join(names, ", ")
}

// format runs the generated source through goimports.
func format(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", filename, err)
	}

	return out, nil
}
