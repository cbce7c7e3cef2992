// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package emit

import (
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/pixivfe/locallang/core/signature"
)

// LanguageFile is the input of [Language].
type LanguageFile struct {
	Package  string
	Language string
	// DisplayName is the English name of the language, if known.
	DisplayName string
	Accessors   []*signature.Accessor
}

// Language returns the Go source declaring the translations of one language.
func Language(f LanguageFile) ([]byte, error) {
	typeName, err := TypeName(f.Language)
	if err != nil {
		return nil, err
	}

	var (
		body strings.Builder
		deps = make(importSet)
	)

	if f.DisplayName != "" {
		fmt.Fprintf(&body, "// %s holds the %s translations (%s).\n", typeName, f.Language, f.DisplayName)
	} else {
		fmt.Fprintf(&body, "// %s holds the %s translations.\n", typeName, f.Language)
	}

	fmt.Fprintf(&body, "type %s struct{}\n", typeName)

	for _, a := range f.Accessors {
		fmt.Fprintf(&body, "\n// %s returns the %s translation.\n", a.Method, strconv.Quote(a.Key))
		fmt.Fprintf(&body, "func (%s) %s(%s) string {\n", typeName, a.Method, paramList(a, deps))
		fmt.Fprintf(&body, "\treturn %s\n", renderExpr(a, deps))
		body.WriteString("}\n")
	}

	var sb strings.Builder

	sb.WriteString(Header + "\n\n")
	fmt.Fprintf(&sb, "package %s\n\n", f.Package)
	deps.write(&sb)
	sb.WriteString(body.String())

	return format(FileName(f.Language), []byte(sb.String()))
}

// renderExpr returns the expression building the translated string of a.
func renderExpr(a *signature.Accessor, deps importSet) string {
	if a.Render.Mode == signature.Replace {
		if len(a.Params) == 0 {
			return strconv.Quote(a.Render.Template)
		}

		deps["strings"] = struct{}{}

		var sb strings.Builder

		sb.WriteString("strings.NewReplacer(\n")

		for _, p := range a.Params {
			fmt.Fprintf(&sb, "\t\t%s, %s,\n", strconv.Quote("{"+p.Name+"}"), textExpr(p, deps))
		}

		fmt.Fprintf(&sb, "\t).Replace(%s)", strconv.Quote(a.Render.Template))

		return sb.String()
	}

	if len(a.Render.Segments) == 0 {
		return `""`
	}

	parts := make([]string, 0, len(a.Render.Segments))

	for _, s := range a.Render.Segments {
		if !s.IsRef() {
			parts = append(parts, strconv.Quote(s.Text))

			continue
		}

		p, _ := a.Param(s.Name)
		parts = append(parts, textExpr(p, deps))
	}

	return strings.Join(parts, " + ")
}
