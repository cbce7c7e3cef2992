// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/locallang/core/audit"
	"codeberg.org/pixivfe/locallang/core/emit"
	"codeberg.org/pixivfe/locallang/core/signature"
)

// setup writes the given catalogs into a temporary project and returns options for it.
func setup(t *testing.T, catalogs map[string]string) Options {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "localisation")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	for name, content := range catalogs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	return Options{
		DefaultLanguage: "en_us",
		CatalogDir:      dir,
		OutputDir:       filepath.Join(root, "local"),
		AuditFile:       filepath.Join(root, "untranslated.json"),
		Package:         "local",
		Workers:         2,
	}
}

func artifact(t *testing.T, res *Result, path string) string {
	t.Helper()

	for _, a := range res.Artifacts {
		if a.Path == path {
			return string(a.Data)
		}
	}

	t.Fatalf("no artifact %s", path)

	return ""
}

func TestRunTranslatedLanguage(t *testing.T) {
	t.Parallel()

	opts := setup(t, map[string]string{
		"en_us.json": `{"hello": "Hello {name}"}`,
		"fr_fr.json": `{"hello": "Hello {name}"}`,
	})

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"en_us", "fr_fr"}, res.Languages)
	assert.Empty(t, res.Audit)

	fr := res.Modules[1].Accessor("hello")
	require.NotNil(t, fr)

	out, err := fr.Execute(map[string]any{"name": "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ann", out)

	src := artifact(t, res, filepath.Join(opts.OutputDir, "fr_fr_gen.go"))
	assert.Contains(t, src, "func (FrFr) Hello(name any) string {")

	master := artifact(t, res, filepath.Join(opts.OutputDir, emit.MasterFileName))
	assert.Contains(t, master, "return FrFr{}.Hello(name), nil")
	assert.Equal(t, "{}\n", artifact(t, res, opts.AuditFile))
}

func TestRunUntranslatedLanguage(t *testing.T) {
	t.Parallel()

	opts := setup(t, map[string]string{
		"en_us.json": `{"hello": "Hi"}`,
		"fr_fr.json": `{}`,
	})

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, audit.Record{"fr_fr": {"hello"}}, res.Audit)

	master := artifact(t, res, filepath.Join(opts.OutputDir, emit.MasterFileName))
	assert.Contains(t, master, `return "", &TranslationMissingError{Key: "hello", Language: "fr_fr"}`)
	assert.Contains(t, master, "return EnUs{}.Hello(), nil")
}

func TestRunTranslationDropsPlaceholder(t *testing.T) {
	t.Parallel()

	opts := setup(t, map[string]string{
		"en_us.json": `{"hello": "Hello {name}", "pair": "{a} and {b}"}`,
		"fr_fr.json": `{"hello": "Bonjour", "pair": "avec {b}"}`,
	})

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, res.Audit)

	master := artifact(t, res, filepath.Join(opts.OutputDir, emit.MasterFileName))
	assert.Contains(t, master, "Hello func(name any) (string, error)")
	assert.Contains(t, master, "return FrFr{}.Hello(), nil")
	assert.Contains(t, master, "return FrFr{}.Pair(b), nil")
	assert.NotContains(t, master, "TranslationMissingError{Key:")
}

func TestRunDateMetadata(t *testing.T) {
	t.Parallel()

	opts := setup(t, map[string]string{
		"en_us.json": `{
			"greet": "See you {when}",
			"@greet": {"placeholders": {"when": {"type": "datetime", "format": "%Y-%m-%d"}}}
		}`,
		"de_de.yaml": "greet: Bis {when}\n",
	})

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	// The default catalog's metadata applies to de_de too.
	de := artifact(t, res, filepath.Join(opts.OutputDir, "de_de_gen.go"))
	assert.Contains(t, de, "func (DeDe) Greet(when time.Time) string {")
	assert.Contains(t, de, `return "Bis " + when.Format("2006-01-02")`)

	master := artifact(t, res, filepath.Join(opts.OutputDir, emit.MasterFileName))
	assert.Contains(t, master, "Greet func(when time.Time) (string, error)")
}

func TestRunReservedPlaceholder(t *testing.T) {
	t.Parallel()

	opts := setup(t, map[string]string{
		"en_us.json": `{"count": "{int} items", "@count": {"placeholders": {"int": {"type": "int"}}}}`,
	})

	_, err := Run(context.Background(), opts)
	require.ErrorIs(t, err, signature.ErrReservedPlaceholderName)
	assert.Contains(t, err.Error(), "language en_us")
}

func TestRunMetadataKeysHaveNoAccessor(t *testing.T) {
	t.Parallel()

	opts := setup(t, map[string]string{
		"en_us.json": `{"@orphan": {"no_f_string": true}, "hello": "Hi", "@hello": {}}`,
	})

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, res.Modules, 1)
	assert.Equal(t, []string{"hello"}, res.Modules[0].Keys)

	for _, a := range res.Artifacts {
		assert.NotContains(t, string(a.Data), "Orphan", a.Path)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	opts := setup(t, map[string]string{
		"en_us.json": `{"hello": "Hello {name}", "bye": "Bye", "@bye": {"no_f_string": true}}`,
		"fr_fr.json": `{"hello": "Bonjour {name}"}`,
		"ja_jp.json": `{"bye": "さようなら"}`,
	})
	opts.ReportFile = filepath.Join(filepath.Dir(opts.AuditFile), "STATUS.md")

	first, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.NoError(t, first.Write())

	second, err := Run(context.Background(), opts)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Artifacts, second.Artifacts); diff != "" {
		t.Errorf("artifacts differ between runs (-first +second):\n%s", diff)
	}

	stale, err := second.Stale()
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestStale(t *testing.T) {
	t.Parallel()

	opts := setup(t, map[string]string{
		"en_us.json": `{"hello": "Hello"}`,
	})

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	stale, err := res.Stale()
	require.NoError(t, err)
	assert.Len(t, stale, len(res.Artifacts))

	require.NoError(t, res.Write())
	require.NoError(t, os.WriteFile(opts.AuditFile, []byte("{}"), 0o600))

	stale, err = res.Stale()
	require.NoError(t, err)
	assert.Equal(t, []string{opts.AuditFile}, stale)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		catalogs map[string]string
		want     error
	}{
		{
			name:     "default catalog missing",
			catalogs: map[string]string{"fr_fr.json": `{}`},
			want:     ErrDefaultCatalogMissing,
		},
		{
			name:     "duplicate accessor",
			catalogs: map[string]string{"en_us.json": `{"Hello World": "a", "hello_world": "b"}`},
			want:     ErrDuplicateAccessor,
		},
		{
			name: "signature mismatch",
			catalogs: map[string]string{
				"en_us.json": `{"items": "{n} items"}`,
				"fr_fr.json": `{"items": "{count} articles"}`,
			},
			want: ErrSignatureMismatch,
		},
		{
			name: "type mismatch",
			catalogs: map[string]string{
				"en_us.json": `{"items": "{n} items"}`,
				"fr_fr.json": `{"items": "{n} articles", "@items": {"placeholders": {"n": {"type": "int"}}}}`,
			},
			want: ErrSignatureMismatch,
		},
		{
			name: "extra placeholder in translation",
			catalogs: map[string]string{
				"en_us.json": `{"hello": "Hello"}`,
				"fr_fr.json": `{"hello": "Bonjour {name}"}`,
			},
			want: ErrSignatureMismatch,
		},
		{
			name: "declaration without type",
			catalogs: map[string]string{
				"en_us.json": `{"hi": "Hi {x}", "@hi": {"placeholders": {"x": {}}}}`,
			},
			want: signature.ErrUnsupportedPlaceholderType,
		},
		{
			name: "declaration with null type",
			catalogs: map[string]string{
				"en_us.json": `{"hi": "Hi {x}", "@hi": {"placeholders": {"x": {"type": null}}}}`,
			},
			want: signature.ErrUnsupportedPlaceholderType,
		},
		{
			name: "unsupported type",
			catalogs: map[string]string{
				"en_us.json": `{"n": "{n}", "@n": {"placeholders": {"n": {"type": "decimal"}}}}`,
			},
			want: signature.ErrUnsupportedPlaceholderType,
		},
		{
			name: "missing date format",
			catalogs: map[string]string{
				"en_us.json": `{"d": "{d}", "@d": {"placeholders": {"d": {"type": "time"}}}}`,
			},
			want: signature.ErrMissingDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Run(context.Background(), setup(t, tt.catalogs))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRunJoinsLanguageErrors(t *testing.T) {
	t.Parallel()

	opts := setup(t, map[string]string{
		"en_us.json": `{"hello": "Hi"}`,
		"de_de.json": `[]`,
		"fr_fr.json": `{"x": "{func}"}`,
	})

	_, err := Run(context.Background(), opts)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "de_de.json")
	assert.Contains(t, msg, "language fr_fr")
	assert.Less(t, strings.Index(msg, "de_de"), strings.Index(msg, "fr_fr"))
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	opts := setup(t, map[string]string{"en_us.json": `{"hello": "Hi"}`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, opts)
	require.ErrorIs(t, err, context.Canceled)
}
