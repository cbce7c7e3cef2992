// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"codeberg.org/pixivfe/locallang/core/catalog"
	"codeberg.org/pixivfe/locallang/core/signature"
)

var (
	// ErrUnknownLanguage is returned by Preview for a language without a catalog.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrNotTranslated is returned by Preview for a key the language does not translate.
	ErrNotTranslated = errors.New("not translated")

	errMalformedArgument = errors.New("argument must look like name=value")
)

// Preview renders one key of one language in-process.
//
// args holds "name=value" pairs; each value is parsed according to the type of
// the parameter it names.
func Preview(opts Options, lang, key string, args []string) (string, error) {
	paths, err := catalog.Discover(opts.CatalogDir)
	if err != nil {
		return "", err
	}

	var defPath, langPath string

	for _, path := range paths {
		if catalog.LanguageOf(path) == opts.DefaultLanguage {
			defPath = path
		}

		if catalog.LanguageOf(path) == lang {
			langPath = path
		}
	}

	if defPath == "" {
		return "", fmt.Errorf("%w: no catalog for %s in %s", ErrDefaultCatalogMissing, opts.DefaultLanguage, opts.CatalogDir)
	}

	if langPath == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}

	def, err := catalog.Load(defPath)
	if err != nil {
		return "", err
	}

	c := def
	if langPath != defPath {
		if c, err = catalog.Load(langPath); err != nil {
			return "", err
		}
	}

	template, ok := c.Template(key)
	if !ok {
		return "", fmt.Errorf("%q is %w in %s", key, ErrNotTranslated, lang)
	}

	a, err := signature.Synthesize(key, template, signature.Resolve(key, c, def), opts.synthesis())
	if err != nil {
		return "", err
	}

	values, err := parseArgs(a, args)
	if err != nil {
		return "", err
	}

	return a.Execute(values)
}

func parseArgs(a *signature.Accessor, args []string) (map[string]any, error) {
	values := make(map[string]any, len(args))

	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errMalformedArgument, arg)
		}

		p, ok := a.Param(name)
		if !ok {
			return nil, fmt.Errorf("key %q has no placeholder %q", a.Key, name)
		}

		v, err := p.Type.ParseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("placeholder %q: %w", name, err)
		}

		values[name] = v
	}

	return values, nil
}
