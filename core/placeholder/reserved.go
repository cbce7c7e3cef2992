// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package placeholder

import (
	"go/token"
	"regexp"
)

// reservedNames cannot be used as placeholder names.
//
// It holds receiver and type names of generated code, and the identifiers
// generated accessors refer to.
var reservedNames = map[string]struct{}{
	"l":        {},
	"self":     {},
	"cls":      {},
	"int":      {},
	"float":    {},
	"str":      {},
	"bool":     {},
	"datetime": {},
	"time":     {},
	"any":      {},
	"string":   {},
	"float64":  {},
	"error":    {},
	"nil":      {},
	"true":     {},
	"false":    {},
	"fmt":      {},
	"strconv":  {},
	"strings":  {},
	"_":        {},
}

var identifierRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsReserved reports whether name collides with a reserved name or a Go keyword.
func IsReserved(name string) bool {
	if _, ok := reservedNames[name]; ok {
		return true
	}

	return token.IsKeyword(name)
}

// IsValidName reports whether name can be used as a parameter name.
func IsValidName(name string) bool {
	return identifierRegexp.MatchString(name)
}
