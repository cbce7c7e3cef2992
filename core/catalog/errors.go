// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import "errors"

// Catalog errors.
var (
	// ErrEmptyCatalog is returned when a catalog document is empty or null.
	// An empty object is a valid catalog.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrMalformedCatalog is returned when a catalog is not valid structured data
	// or does not have the expected shape.
	ErrMalformedCatalog = errors.New("malformed catalog")

	// ErrInvalidLanguage is returned when a catalog file name cannot be used as a language tag.
	ErrInvalidLanguage = errors.New("invalid language tag")

	// ErrDuplicateLanguage is returned when a language has more than one catalog file.
	ErrDuplicateLanguage = errors.New("duplicate catalog for language")

	// ErrUnsupportedFormat is returned for files that are not JSON or YAML catalogs.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)
