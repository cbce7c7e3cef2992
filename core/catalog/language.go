// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// languageRegexp restricts language tags to names usable in Go identifiers and file names.
var languageRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// englishNames names tags in English for generated documentation.
var englishNames = display.Tags(language.English)

// ValidateLanguage checks that lang can name a catalog and its generated code.
func ValidateLanguage(lang string) error {
	if !languageRegexp.MatchString(lang) {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}

	return nil
}

// Tag returns the BCP 47 tag for lang.
// Both underscores and hyphens are accepted, so "pt_br" is read as "pt-BR".
func Tag(lang string) (language.Tag, error) {
	return language.Parse(strings.ReplaceAll(lang, "_", "-"))
}

// DisplayName returns the English name of lang, e.g. "American English" for "en_us",
// or an empty string when lang is not a known BCP 47 tag.
func DisplayName(lang string) string {
	tag, err := Tag(lang)
	if err != nil {
		return ""
	}

	return englishNames.Name(tag)
}

// Discover lists the catalog files in dir, sorted by file name.
//
// Files that are neither JSON nor YAML are ignored. A language with more
// than one catalog file is an error.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory %s: %w", dir, err)
	}

	var (
		paths []string
		seen  = make(map[string]string)
	)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if _, ok := FormatOf(entry.Name()); !ok {
			continue
		}

		lang := LanguageOf(entry.Name())
		if err := ValidateLanguage(lang); err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		if other, ok := seen[lang]; ok {
			return nil, fmt.Errorf("%w %s: %s and %s", ErrDuplicateLanguage, lang, other, entry.Name())
		}

		seen[lang] = entry.Name()

		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	return paths, nil
}
