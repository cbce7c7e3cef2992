// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/locallang/core/catalog"
)

func defaultCatalog() *catalog.Catalog {
	return catalog.New("en_us",
		catalog.Entry{Key: "hello", Template: "Hello"},
		catalog.Entry{Key: "@hello", Metadata: &catalog.Metadata{}},
		catalog.Entry{Key: "goodbye", Template: "Goodbye"},
		catalog.Entry{Key: "thanks", Template: "Thanks"},
	)
}

func TestCompute(t *testing.T) {
	t.Parallel()

	record := Compute(defaultCatalog(), []Generated{
		{Language: "en_us", Keys: []string{"hello", "goodbye", "thanks"}},
		{Language: "fr_fr", Keys: []string{"hello"}},
		{Language: "de_de", Keys: []string{"thanks", "hello", "bonus"}},
	})

	assert.Equal(t, Record{
		"fr_fr": {"goodbye", "thanks"},
		"de_de": {"goodbye"},
	}, record)

	assert.True(t, record.IsMissing("fr_fr", "thanks"))
	assert.False(t, record.IsMissing("fr_fr", "hello"))
	assert.False(t, record.IsMissing("en_us", "hello"))
	assert.Equal(t, []string{"de_de", "fr_fr"}, record.Languages())
	assert.Equal(t, 3, record.Total())
}

// Every (language, key) pair is either generated or listed as missing, never both.
func TestComputeCoversEveryKey(t *testing.T) {
	t.Parallel()

	def := defaultCatalog()
	generated := []Generated{
		{Language: "fr_fr", Keys: []string{"goodbye"}},
		{Language: "es_es", Keys: nil},
	}
	record := Compute(def, generated)

	for _, g := range generated {
		for _, key := range def.Keys() {
			assert.NotEqual(t, contains(g.Keys, key), record.IsMissing(g.Language, key), g.Language+"/"+key)
		}
	}
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}

	return false
}

func TestExtra(t *testing.T) {
	t.Parallel()

	extra := Extra(defaultCatalog(), []Generated{
		{Language: "fr_fr", Keys: []string{"hello", "bonjour"}},
		{Language: "en_us", Keys: []string{"hello"}},
	})

	assert.Equal(t, map[string][]string{"fr_fr": {"bonjour"}}, extra)
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := Marshal(Record{"fr_fr": {"goodbye"}, "de_de": {"a<b", "c"}})
	require.NoError(t, err)

	assert.Equal(t, `{
    "de_de": [
        "a<b",
        "c"
    ],
    "fr_fr": [
        "goodbye"
    ]
}
`, string(data))

	data, err = Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "untranslated.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"stale": ["x"]}`), 0o600))

	require.NoError(t, Write(path, Record{"fr_fr": {"goodbye"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"fr_fr\": [\n        \"goodbye\"\n    ]\n}\n", string(data))
}

func TestReport(t *testing.T) {
	t.Parallel()

	statuses := Summarize(defaultCatalog(), []Generated{
		{Language: "en_us", Keys: []string{"hello", "goodbye", "thanks"}},
		{Language: "fr_fr", Keys: []string{"hello", "bonjour"}},
	})
	require.Len(t, statuses, 2)

	assert.Equal(t, "American English", statuses[0].DisplayName)
	assert.InDelta(t, 100.0, statuses[0].Completion(), 0.001)
	assert.Equal(t, 1, statuses[1].Translated)
	assert.Equal(t, []string{"goodbye", "thanks"}, statuses[1].Missing)
	assert.Equal(t, []string{"bonjour"}, statuses[1].Extra)

	report := Report("en_us", statuses)

	assert.Contains(t, report, "| `en_us` | American English | 3 | 3 | 0 | 0 | 100.0% |\n")
	assert.Contains(t, report, fmt.Sprintf("| `fr_fr` | %s | 3 | 1 | 2 | 1 | 33.3%% |\n", catalog.DisplayName("fr_fr")))
	assert.Contains(t, report, "## Language: `fr_fr`\n\n### Missing Keys\n\n- `goodbye`\n- `thanks`\n\n### Extra Keys\n\n- `bonjour`\n")
	assert.NotContains(t, report, "## Language: `en_us`")

	path := filepath.Join(t.TempDir(), "STATUS.md")
	require.NoError(t, WriteReport(path, "en_us", statuses))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, report, string(data))
}
