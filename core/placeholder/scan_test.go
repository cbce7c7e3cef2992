// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		declared []string
		mode     Mode
		want     []string
	}{
		{
			name:     "segment finds whole segments",
			template: "Hello {name} from {city}",
			mode:     SegmentMode,
			want:     []string{"name", "city"},
		},
		{
			name:     "segment ignores adjacent punctuation",
			template: "Hello {name}!",
			mode:     SegmentMode,
			want:     []string{},
		},
		{
			name:     "segment rejects nested braces",
			template: "{{name}} {a{b}",
			mode:     SegmentMode,
			want:     []string{},
		},
		{
			name:     "token finds adjacent punctuation",
			template: "Hello {name}!",
			mode:     TokenMode,
			want:     []string{"name"},
		},
		{
			name:     "token skips escapes",
			template: "{{literal}} and {real}",
			mode:     TokenMode,
			want:     []string{"real"},
		},
		{
			name:     "token skips non identifiers",
			template: "{0} {first-name} {} {ok_1}",
			mode:     TokenMode,
			want:     []string{"ok_1"},
		},
		{
			name:     "declared names are skipped",
			template: "{when} {who}",
			declared: []string{"when"},
			mode:     TokenMode,
			want:     []string{"who"},
		},
		{
			name:     "first seen order without duplicates",
			template: "{b} {a} {b} {c} {a}",
			mode:     SegmentMode,
			want:     []string{"b", "a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			declared := make(map[string]struct{}, len(tt.declared))
			for _, d := range tt.declared {
				declared[d] = struct{}{}
			}

			assert.Equal(t, tt.want, Extract(tt.template, declared, tt.mode))
		})
	}
}

func TestInterpolate(t *testing.T) {
	t.Parallel()

	isParam := func(name string) bool { return name == "name" || name == "n" }

	got := Interpolate("{{Hi}} {name}, {unknown} has {n}}}", isParam)

	assert.Equal(t, []Segment{
		{Text: "{Hi} "},
		{Name: "name"},
		{Text: ", {unknown} has "},
		{Name: "n"},
		{Text: "}"},
	}, got)

	assert.Empty(t, Interpolate("", isParam))
	assert.Equal(t, []Segment{{Text: "plain"}}, Interpolate("plain", isParam))
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := ParseMode("segment")
	assert.NoError(t, err)
	assert.Equal(t, SegmentMode, m)
	assert.Equal(t, "segment", m.String())

	m, err = ParseMode("token")
	assert.NoError(t, err)
	assert.Equal(t, TokenMode, m)

	_, err = ParseMode("regex")
	assert.ErrorIs(t, err, errUnknownMode)
}
