// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package audit compares the generated languages against the default catalog.

The result is a [Record] listing, per language, the keys of the default catalog
the language does not translate. It is written as JSON:

	{
	    "fr_fr": [
	        "goodbye"
	    ]
	}

Languages with nothing missing are left out.
*/
package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"codeberg.org/pixivfe/locallang/core/catalog"
)

const auditFilePermissions = 0o644

// Generated lists the keys generated for one language.
type Generated struct {
	Language string
	Keys     []string
}

// Record maps a language to its untranslated keys, in default catalog order.
type Record map[string][]string

// IsMissing reports whether key is untranslated in lang.
func (r Record) IsMissing(lang, key string) bool {
	return slices.Contains(r[lang], key)
}

// Languages returns the languages with missing keys in sorted order.
func (r Record) Languages() []string {
	langs := make([]string, 0, len(r))
	for lang := range r {
		langs = append(langs, lang)
	}

	slices.Sort(langs)

	return langs
}

// Total returns the number of missing translations across all languages.
func (r Record) Total() int {
	n := 0
	for _, keys := range r {
		n += len(keys)
	}

	return n
}

// Compute returns the keys of def that each generated language lacks.
func Compute(def *catalog.Catalog, generated []Generated) Record {
	record := make(Record)

	for _, g := range generated {
		have := make(map[string]struct{}, len(g.Keys))
		for _, key := range g.Keys {
			have[key] = struct{}{}
		}

		for _, key := range def.Keys() {
			if _, ok := have[key]; !ok {
				record[g.Language] = append(record[g.Language], key)
			}
		}
	}

	return record
}

// Extra returns, per language, the generated keys that def does not define.
// Languages without extra keys are left out.
func Extra(def *catalog.Catalog, generated []Generated) map[string][]string {
	extra := make(map[string][]string)

	for _, g := range generated {
		for _, key := range g.Keys {
			if !def.Has(key) {
				extra[g.Language] = append(extra[g.Language], key)
			}
		}
	}

	return extra
}

// Marshal encodes the record as indented JSON with sorted languages and a trailing newline.
func Marshal(r Record) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if r == nil {
		r = Record{}
	}

	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encoding audit record: %w", err)
	}

	return buf.Bytes(), nil
}

// Write replaces the file at path with the encoded record.
func Write(path string, r Record) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, auditFilePermissions); err != nil {
		return fmt.Errorf("writing audit file: %w", err)
	}

	return nil
}
