// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package emit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/pixivfe/locallang/core/signature"
)

// Branch is the provider of one method for one language.
type Branch struct {
	// Missing is set when the language does not translate the key.
	Missing bool
	// Accessor is the language's own accessor when Missing is false.
	// Arguments are forwarded in its parameter order.
	Accessor *signature.Accessor
}

// Method is one dispatching method of the master file.
type Method struct {
	Accessor *signature.Accessor
	// Branches holds one entry per language, in the order of MasterFile.Languages.
	Branches []Branch
}

// MasterFile is the input of [Master].
type MasterFile struct {
	Package         string
	DefaultLanguage string
	Languages       []string
	Methods         []Method
}

var errBranchCount = errors.New("branch count does not match language count")

// Master returns the Go source of the dispatch file.
func Master(f MasterFile) ([]byte, error) {
	typeNames := make([]string, len(f.Languages))
	taken := make(map[string]struct{}, len(f.Languages)+1)
	taken["TranslationMissingError"] = struct{}{}

	for i, lang := range f.Languages {
		name, err := TypeName(lang)
		if err != nil {
			return nil, err
		}

		if _, ok := taken[name]; ok {
			return nil, fmt.Errorf("%w: language %q maps to %s", ErrNameCollision, lang, name)
		}

		typeNames[i] = name
		taken[name] = struct{}{}
	}

	for _, m := range f.Methods {
		if len(m.Branches) != len(f.Languages) {
			return nil, fmt.Errorf("method %s: %w", m.Accessor.Method, errBranchCount)
		}

		// Closures in the providers table refer to the language types by name.
		for _, p := range m.Accessor.Params {
			if _, ok := taken[p.Name]; ok {
				return nil, fmt.Errorf("%w: key %q: placeholder %q shadows a generated type",
					ErrNameCollision, m.Accessor.Key, p.Name)
			}
		}
	}

	var (
		body strings.Builder
		deps = make(importSet)
	)

	fmt.Fprintf(&body, "// DefaultLanguage is the language every other catalog is audited against.\n")
	fmt.Fprintf(&body, "const DefaultLanguage = %s\n\n", strconv.Quote(f.DefaultLanguage))

	body.WriteString("// Languages lists the supported languages.\n")
	body.WriteString("var Languages = []string{\n")

	for _, lang := range f.Languages {
		fmt.Fprintf(&body, "\t%s,\n", strconv.Quote(lang))
	}

	body.WriteString("}\n\n")

	body.WriteString(`// TranslationMissingError is returned when the selected language does not translate a key.
type TranslationMissingError struct {
	Key      string
	Language string
}

func (e *TranslationMissingError) Error() string {
	return e.Key + " is not translated in " + e.Language
}

`)

	body.WriteString("type provider struct {\n")

	for _, m := range f.Methods {
		fmt.Fprintf(&body, "\t%s func(%s) (string, error)\n", m.Accessor.Method, paramList(m.Accessor, deps))
	}

	body.WriteString("}\n\n")

	body.WriteString("var providers = map[string]*provider{\n")

	for i, lang := range f.Languages {
		fmt.Fprintf(&body, "\t%s: {\n", strconv.Quote(lang))

		for _, m := range f.Methods {
			writeBranch(&body, m, m.Branches[i], lang, typeNames[i], deps)
		}

		body.WriteString("\t},\n")
	}

	body.WriteString("}\n\n")

	body.WriteString(`// Localisation gives access to the translations of one language.
type Localisation struct {
	p *provider
}

// New returns the translations for lang.
//
// When lang is not supported every method returns an empty string and a nil error.
func New(lang string) Localisation {
	return Localisation{p: providers[lang]}
}

// IsSupported reports whether translations for lang were generated.
func IsSupported(lang string) bool {
	_, ok := providers[lang]

	return ok
}
`)

	for _, m := range f.Methods {
		a := m.Accessor

		fmt.Fprintf(&body, "\n// %s returns the %s translation.\n", a.Method, strconv.Quote(a.Key))
		fmt.Fprintf(&body, "func (l Localisation) %s(%s) (string, error) {\n", a.Method, paramList(a, deps))
		body.WriteString("\tif l.p == nil {\n\t\treturn \"\", nil\n\t}\n\n")
		fmt.Fprintf(&body, "\treturn l.p.%s(%s)\n", a.Method, argList(a))
		body.WriteString("}\n")
	}

	var sb strings.Builder

	sb.WriteString(Header + "\n\n")
	fmt.Fprintf(&sb, "package %s\n\n", f.Package)
	deps.write(&sb)
	sb.WriteString(body.String())

	return format(MasterFileName, []byte(sb.String()))
}

func writeBranch(sb *strings.Builder, m Method, b Branch, lang, typeName string, deps importSet) {
	a := m.Accessor

	fmt.Fprintf(sb, "\t\t%s: func(%s) (string, error) {\n", a.Method, paramList(a, deps))

	if b.Missing || b.Accessor == nil {
		fmt.Fprintf(sb, "\t\t\treturn \"\", &TranslationMissingError{Key: %s, Language: %s}\n",
			strconv.Quote(a.Key), strconv.Quote(lang))
	} else {
		fmt.Fprintf(sb, "\t\t\treturn %s{}.%s(%s), nil\n", typeName, b.Accessor.Method, argList(b.Accessor))
	}

	sb.WriteString("\t\t},\n")
}
