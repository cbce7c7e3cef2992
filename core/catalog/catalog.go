// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog loads translation catalogs.

A catalog is a flat, ordered mapping from translation key to template. A key
starting with "@" holds the metadata of its sibling key:

	{
	    "greet": "See you {when}",
	    "@greet": {
	        "no_f_string": false,
	        "placeholders": {
	            "when": {"type": "datetime", "format": "%Y-%m-%d"}
	        }
	    }
	}

Catalogs are read from JSON or YAML files named after their language tag,
for example "en_us.json". Document order is preserved.
*/
package catalog

import "strings"

// MetadataPrefix marks a metadata key.
const MetadataPrefix = "@"

// Placeholder is a placeholder declaration from catalog metadata.
//
// Type and Format are kept as written; they are validated when signatures are built.
type Placeholder struct {
	Name   string
	Type   string
	Format string
}

// Metadata describes the parameters of one translation key.
type Metadata struct {
	// NoFString selects literal substitution instead of live interpolation.
	NoFString    bool
	Placeholders []Placeholder
}

// Entry is one key of a catalog.
type Entry struct {
	Key      string
	Template string
	// Metadata is set for metadata keys only.
	Metadata *Metadata
}

// IsMetadata reports whether e is a metadata entry.
func (e Entry) IsMetadata() bool {
	return IsMetadataKey(e.Key)
}

// IsMetadataKey reports whether key names metadata rather than a translation.
func IsMetadataKey(key string) bool {
	return strings.HasPrefix(key, MetadataPrefix)
}

// Catalog is the parsed content of one catalog file.
type Catalog struct {
	Language string
	Path     string

	entries []Entry
	index   map[string]int
}

// New returns a catalog holding entries in order.
// A repeated key replaces the earlier value and keeps the earlier position.
func New(language string, entries ...Entry) *Catalog {
	c := &Catalog{
		Language: language,
		index:    make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		c.add(e)
	}

	return c
}

func (c *Catalog) add(e Entry) {
	if i, ok := c.index[e.Key]; ok {
		c.entries[i] = e

		return
	}

	c.index[e.Key] = len(c.entries)
	c.entries = append(c.entries, e)
}

// Entries returns every entry, metadata included, in document order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)

	return out
}

// Keys returns the translation keys in document order. Metadata keys are excluded.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))

	for _, e := range c.entries {
		if !e.IsMetadata() {
			keys = append(keys, e.Key)
		}
	}

	return keys
}

// Template returns the template of key.
func (c *Catalog) Template(key string) (string, bool) {
	i, ok := c.index[key]
	if !ok || c.entries[i].IsMetadata() {
		return "", false
	}

	return c.entries[i].Template, true
}

// Has reports whether key is a translation key of c.
func (c *Catalog) Has(key string) bool {
	_, ok := c.Template(key)

	return ok
}

// Metadata returns the metadata declared for key, or nil.
func (c *Catalog) Metadata(key string) *Metadata {
	i, ok := c.index[MetadataPrefix+key]
	if !ok {
		return nil
	}

	return c.entries[i].Metadata
}

// OrphanMetadata returns the metadata keys whose translation key exists neither
// in c nor in fallback. fallback may be nil.
func (c *Catalog) OrphanMetadata(fallback *Catalog) []string {
	var orphans []string

	for _, e := range c.entries {
		if !e.IsMetadata() {
			continue
		}

		key := strings.TrimPrefix(e.Key, MetadataPrefix)
		if c.Has(key) || (fallback != nil && fallback.Has(key)) {
			continue
		}

		orphans = append(orphans, e.Key)
	}

	return orphans
}
