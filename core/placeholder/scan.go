// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package placeholder

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects how placeholders are recognised inside a template.
type Mode int

const (
	// TokenMode recognises "{name}" anywhere in a template, where name is an identifier.
	// "{{" and "}}" are escapes and never start or end a placeholder.
	TokenMode Mode = iota

	// SegmentMode only recognises a placeholder when it forms a whole
	// whitespace-separated segment, e.g. "Hello {name}" but not "Hello {name}!".
	SegmentMode
)

const (
	openMarker  = '{'
	closeMarker = '}'
)

var errUnknownMode = errors.New("unknown placeholder mode")

// ParseMode parses "token" or "segment".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "token":
		return TokenMode, nil
	case "segment":
		return SegmentMode, nil
	default:
		return TokenMode, fmt.Errorf("%w: %q", errUnknownMode, s)
	}
}

func (m Mode) String() string {
	if m == SegmentMode {
		return "segment"
	}

	return "token"
}

// Extract returns the placeholder names used in template that are not in declared.
//
// Names are returned in first-seen order without duplicates, so generated
// signatures stay stable between runs.
func Extract(template string, declared map[string]struct{}, mode Mode) []string {
	var found []string

	if mode == SegmentMode {
		found = segmentNames(template)
	} else {
		found = tokenNames(template)
	}

	seen := make(map[string]struct{}, len(found))
	out := make([]string, 0, len(found))

	for _, name := range found {
		if _, ok := declared[name]; ok {
			continue
		}

		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}

		out = append(out, name)
	}

	return out
}

func segmentNames(template string) []string {
	var names []string

	for _, segment := range strings.Fields(template) {
		if len(segment) < 3 || segment[0] != openMarker || segment[len(segment)-1] != closeMarker {
			continue
		}

		inner := segment[1 : len(segment)-1]
		if strings.ContainsAny(inner, "{}") {
			continue
		}

		names = append(names, inner)
	}

	return names
}

func tokenNames(template string) []string {
	var names []string

	for i := 0; i < len(template); {
		if strings.HasPrefix(template[i:], "{{") || strings.HasPrefix(template[i:], "}}") {
			i += 2

			continue
		}

		if template[i] == openMarker {
			if end := strings.IndexByte(template[i+1:], closeMarker); end >= 0 {
				name := template[i+1 : i+1+end]
				if IsValidName(name) {
					names = append(names, name)
					i += end + 2

					continue
				}
			}
		}

		i++
	}

	return names
}

// Segment is a piece of a parsed template: either literal text or a reference to a parameter.
type Segment struct {
	Text string // literal text, when Name is empty
	Name string // referenced parameter
}

// IsRef reports whether s references a parameter.
func (s Segment) IsRef() bool {
	return s.Name != ""
}

// Interpolate splits template into literal text and parameter references.
//
// A "{name}" is a reference only when isParam(name) is true; anything else is kept
// as literal text. "{{" and "}}" collapse to single braces. Adjacent literal
// pieces are merged.
func Interpolate(template string, isParam func(string) bool) []Segment {
	var (
		segments []Segment
		literal  strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, Segment{Text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(template); {
		switch {
		case strings.HasPrefix(template[i:], "{{"):
			literal.WriteByte(openMarker)

			i += 2
		case strings.HasPrefix(template[i:], "}}"):
			literal.WriteByte(closeMarker)

			i += 2
		case template[i] == openMarker:
			end := strings.IndexByte(template[i+1:], closeMarker)
			if end >= 0 {
				if name := template[i+1 : i+1+end]; isParam(name) {
					flush()

					segments = append(segments, Segment{Name: name})
					i += end + 2

					continue
				}
			}

			literal.WriteByte(openMarker)

			i++
		default:
			literal.WriteByte(template[i])

			i++
		}
	}

	flush()

	return segments
}
