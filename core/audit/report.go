// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/pixivfe/locallang/core/catalog"
)

// Status summarises the completeness of one language.
type Status struct {
	Language    string
	DisplayName string
	BaseKeys    int
	Translated  int
	Missing     []string
	Extra       []string
}

// Completion returns the translated share of the default keys, in percent.
func (s Status) Completion() float64 {
	if s.BaseKeys == 0 {
		return 100
	}

	return float64(s.Translated) * 100 / float64(s.BaseKeys)
}

// Summarize returns one status per generated language, in the order given.
func Summarize(def *catalog.Catalog, generated []Generated) []Status {
	record := Compute(def, generated)
	extra := Extra(def, generated)
	base := len(def.Keys())

	statuses := make([]Status, 0, len(generated))

	for _, g := range generated {
		missing := record[g.Language]

		statuses = append(statuses, Status{
			Language:    g.Language,
			DisplayName: catalog.DisplayName(g.Language),
			BaseKeys:    base,
			Translated:  base - len(missing),
			Missing:     missing,
			Extra:       extra[g.Language],
		})
	}

	return statuses
}

// Report renders the statuses as a Markdown document.
func Report(defaultLanguage string, statuses []Status) string {
	var b strings.Builder

	b.WriteString("# Localisation Status\n\n")
	b.WriteString("Generated by `locallang`. Default language: `")
	b.WriteString(defaultLanguage)
	b.WriteString("`.\n\n")

	b.WriteString("| Language | Name | Base Keys | Translated | Missing | Extra | Completion |\n")
	b.WriteString("| --- | --- | ---: | ---: | ---: | ---: | ---: |\n")

	for _, s := range statuses {
		fmt.Fprintf(&b, "| `%s` | %s | %d | %d | %d | %d | %.1f%% |\n",
			s.Language, s.DisplayName, s.BaseKeys, s.Translated, len(s.Missing), len(s.Extra), s.Completion())
	}

	for _, s := range statuses {
		if len(s.Missing) == 0 && len(s.Extra) == 0 {
			continue
		}

		b.WriteString("\n## Language: `")
		b.WriteString(s.Language)
		b.WriteString("`\n")

		writeKeyList(&b, "Missing Keys", s.Missing)
		writeKeyList(&b, "Extra Keys", s.Extra)
	}

	return b.String()
}

func writeKeyList(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}

	b.WriteString("\n### ")
	b.WriteString(title)
	b.WriteString("\n\n")

	for _, key := range keys {
		b.WriteString("- `")
		b.WriteString(key)
		b.WriteString("`\n")
	}
}

// WriteReport replaces the file at path with the Markdown report.
func WriteReport(path, defaultLanguage string, statuses []Status) error {
	if err := os.WriteFile(path, []byte(Report(defaultLanguage, statuses)), auditFilePermissions); err != nil {
		return fmt.Errorf("writing status report: %w", err)
	}

	return nil
}
