// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package placeholder

import (
	"fmt"
	"strconv"
	"time"
)

// Type is the declared type of a placeholder.
//
// The zero value, Any, is used for placeholders found only in a template.
type Type int

// Supported placeholder types.
const (
	Any Type = iota
	Int
	Float
	Str
	Bool
	DateTime
	Time
)

var typesByName = map[string]Type{
	"int":      Int,
	"float":    Float,
	"str":      Str,
	"bool":     Bool,
	"datetime": DateTime,
	"time":     Time,
}

// timeOfDayLayout is accepted by ParseValue for Time placeholders.
const timeOfDayLayout = "15:04:05"

// ParseType maps a catalog type name to a Type.
// Any is not a valid catalog type name and is never returned with ok set.
func ParseType(name string) (Type, bool) {
	t, ok := typesByName[name]

	return t, ok
}

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "str"
	case Bool:
		return "bool"
	case DateTime:
		return "datetime"
	case Time:
		return "time"
	default:
		return "any"
	}
}

// Temporal reports whether values of t must be formatted with a date pattern before rendering.
func (t Type) Temporal() bool {
	return t == DateTime || t == Time
}

// Check reports whether v is acceptable for a placeholder of type t.
func (t Type) Check(v any) bool {
	switch t {
	case Int:
		switch v.(type) {
		case int, int8, int16, int32, int64:
			return true
		}

		return false
	case Float:
		switch v.(type) {
		case float32, float64:
			return true
		}

		return false
	case Str:
		_, ok := v.(string)

		return ok
	case Bool:
		_, ok := v.(bool)

		return ok
	case DateTime, Time:
		_, ok := v.(time.Time)

		return ok
	default:
		return true
	}
}

// ParseValue converts a command-line argument into a value of type t.
//
// DateTime values use RFC 3339. Time values accept either RFC 3339 or "15:04:05".
func (t Type) ParseValue(s string) (any, error) {
	switch t {
	case Int:
		return strconv.Atoi(s)
	case Float:
		return strconv.ParseFloat(s, 64)
	case Bool:
		return strconv.ParseBool(s)
	case DateTime:
		return time.Parse(time.RFC3339, s)
	case Time:
		if v, err := time.Parse(time.RFC3339, s); err == nil {
			return v, nil
		}

		v, err := time.Parse(timeOfDayLayout, s)
		if err != nil {
			return nil, fmt.Errorf("invalid time of day %q: %w", s, err)
		}

		return v, nil
	default:
		return s, nil
	}
}
