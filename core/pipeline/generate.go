// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"fmt"

	"codeberg.org/pixivfe/locallang/core/audit"
	"codeberg.org/pixivfe/locallang/core/catalog"
	"codeberg.org/pixivfe/locallang/core/emit"
	"codeberg.org/pixivfe/locallang/core/signature"
)

// GenerateLanguage generates the Go file of one catalog.
//
// Metadata keys produce no accessor. Placeholder metadata comes from lang
// itself, falling back to def.
func GenerateLanguage(lang, def *catalog.Catalog, opts Options) (*LanguageModule, error) {
	m := &LanguageModule{Language: lang.Language}

	accessors, err := synthesizeAll(lang, func(key string) *catalog.Metadata {
		return signature.Resolve(key, lang, def)
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("language %s: %w", lang.Language, err)
	}

	for _, a := range accessors {
		m.Keys = append(m.Keys, a.Key)
	}

	m.Accessors = accessors

	m.Source, err = emit.Language(emit.LanguageFile{
		Package:     opts.Package,
		Language:    lang.Language,
		DisplayName: catalog.DisplayName(lang.Language),
		Accessors:   accessors,
	})
	if err != nil {
		return nil, fmt.Errorf("language %s: %w", lang.Language, err)
	}

	return m, nil
}

func synthesizeAll(c *catalog.Catalog, metadata func(key string) *catalog.Metadata, opts Options) ([]*signature.Accessor, error) {
	var (
		accessors []*signature.Accessor
		methods   = make(map[string]string)
	)

	for _, key := range c.Keys() {
		template, _ := c.Template(key)

		a, err := signature.Synthesize(key, template, metadata(key), opts.synthesis())
		if err != nil {
			return nil, err
		}

		if other, ok := methods[a.Method]; ok {
			return nil, fmt.Errorf("%w: keys %q and %q both map to %s", ErrDuplicateAccessor, other, key, a.Method)
		}

		methods[a.Method] = key
		accessors = append(accessors, a)
	}

	return accessors, nil
}

// GenerateMaster generates the dispatch file.
//
// Accessors use the default catalog's metadata only. For every language, a key
// listed in record returns a TranslationMissingError; any other key forwards
// to the language accessor, whose parameters must be a subset of the master's.
func GenerateMaster(def *catalog.Catalog, modules []*LanguageModule, record audit.Record, opts Options) ([]byte, error) {
	accessors, err := synthesizeAll(def, def.Metadata, opts)
	if err != nil {
		return nil, fmt.Errorf("master: %w", err)
	}

	file := emit.MasterFile{
		Package:         opts.Package,
		DefaultLanguage: opts.DefaultLanguage,
		Languages:       make([]string, 0, len(modules)),
	}

	for _, m := range modules {
		file.Languages = append(file.Languages, m.Language)
	}

	for _, a := range accessors {
		method := emit.Method{Accessor: a, Branches: make([]emit.Branch, len(modules))}

		for i, m := range modules {
			own := m.Accessor(a.Key)
			if record.IsMissing(m.Language, a.Key) || own == nil {
				method.Branches[i] = emit.Branch{Missing: true}

				continue
			}

			if err := sameParams(a, own); err != nil {
				return nil, fmt.Errorf("language %s: %w", m.Language, err)
			}

			method.Branches[i] = emit.Branch{Accessor: own}
		}

		file.Methods = append(file.Methods, method)
	}

	src, err := emit.Master(file)
	if err != nil {
		return nil, fmt.Errorf("master: %w", err)
	}

	return src, nil
}

// sameParams checks that every parameter of own is a parameter of master with
// the same type. own may take fewer parameters than master; arguments are
// forwarded by name.
func sameParams(master, own *signature.Accessor) error {
	for _, got := range own.Params {
		want, ok := master.Param(got.Name)
		if !ok {
			return &signature.KeyError{Key: master.Key, Placeholder: got.Name, Value: "not in the default catalog", Err: ErrSignatureMismatch}
		}

		if got.Type != want.Type {
			return &signature.KeyError{
				Key:         master.Key,
				Placeholder: got.Name,
				Value:       fmt.Sprintf("%s, want %s", got.Type, want.Type),
				Err:         ErrSignatureMismatch,
			}
		}
	}

	return nil
}
