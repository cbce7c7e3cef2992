// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package pipeline runs a full generation.

[Run] loads every catalog, generates one Go file per language in parallel,
audits the languages against the default catalog and generates the master
dispatch file. Nothing is written until every stage has succeeded; see
[Result.Write] and [Result.Stale].
*/
package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"codeberg.org/pixivfe/locallang/core/audit"
	"codeberg.org/pixivfe/locallang/core/catalog"
	"codeberg.org/pixivfe/locallang/core/emit"
	"codeberg.org/pixivfe/locallang/core/logging"
	"codeberg.org/pixivfe/locallang/core/placeholder"
	"codeberg.org/pixivfe/locallang/core/signature"
)

var (
	// ErrDefaultCatalogMissing is returned when the catalog directory has no catalog for the default language.
	ErrDefaultCatalogMissing = errors.New("default catalog missing")

	// ErrDuplicateAccessor is returned when two keys of a catalog map to the same accessor.
	ErrDuplicateAccessor = errors.New("duplicate accessor")

	// ErrSignatureMismatch is returned when a language accessor does not accept the
	// parameters of the master accessor for the same key.
	ErrSignatureMismatch = errors.New("signature mismatch")
)

// Options configures a run.
type Options struct {
	DefaultLanguage string
	CatalogDir      string
	OutputDir       string
	// AuditFile is the path of the untranslated keys file.
	AuditFile string
	// ReportFile is the path of the Markdown status report. Empty disables it.
	ReportFile string
	// Package is the name of the generated Go package.
	Package string
	Mode    placeholder.Mode
	// Workers bounds the number of languages generated at once.
	Workers int
}

func (o Options) synthesis() signature.Options {
	return signature.Options{Mode: o.Mode}
}

// LanguageModule is the generated file of one language.
type LanguageModule struct {
	Language string
	// Keys lists the generated keys in catalog order.
	Keys      []string
	Accessors []*signature.Accessor
	Source    []byte
}

// Accessor returns the accessor generated for key.
func (m *LanguageModule) Accessor(key string) *signature.Accessor {
	for _, a := range m.Accessors {
		if a.Key == key {
			return a
		}
	}

	return nil
}

// Artifact is a file produced by a run.
type Artifact struct {
	Path string
	Data []byte
}

// Result holds everything a run produced, in memory.
type Result struct {
	DefaultLanguage string
	// Languages lists every generated language in sorted order.
	Languages []string
	Modules   []*LanguageModule
	Audit     audit.Record
	// Extra maps a language to keys it defines but the default catalog does not.
	Extra     map[string][]string
	Statuses  []audit.Status
	Artifacts []Artifact
}

// Run generates every artifact in memory.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.Sys("pipeline")

	paths, err := catalog.Discover(opts.CatalogDir)
	if err != nil {
		return nil, err
	}

	defaultPath := ""

	for _, path := range paths {
		if catalog.LanguageOf(path) == opts.DefaultLanguage {
			defaultPath = path
		}
	}

	if defaultPath == "" {
		return nil, fmt.Errorf("%w: no catalog for %s in %s", ErrDefaultCatalogMissing, opts.DefaultLanguage, opts.CatalogDir)
	}

	def, err := catalog.Load(defaultPath)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", defaultPath).
		Int("keys", len(def.Keys())).
		Msg("Loaded default catalog")

	modules, catalogs, err := generateLanguages(ctx, paths, def, opts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, c := range catalogs {
		for _, key := range c.OrphanMetadata(def) {
			logger.Warn().
				Str("language", c.Language).
				Str("key", key).
				Msg("Metadata without a translation")
		}
	}

	generated := make([]audit.Generated, len(modules))
	for i, m := range modules {
		generated[i] = audit.Generated{Language: m.Language, Keys: m.Keys}
	}

	res := &Result{
		DefaultLanguage: opts.DefaultLanguage,
		Modules:         modules,
		Audit:           audit.Compute(def, generated),
		Extra:           audit.Extra(def, generated),
		Statuses:        audit.Summarize(def, generated),
	}

	for _, m := range modules {
		res.Languages = append(res.Languages, m.Language)

		if keys := res.Audit[m.Language]; len(keys) > 0 {
			logger.Info().
				Str("language", m.Language).
				Strs("keys", keys).
				Msg("Untranslated keys")
		}

		if keys := res.Extra[m.Language]; len(keys) > 0 {
			logger.Warn().
				Str("language", m.Language).
				Strs("keys", keys).
				Msg("Keys missing from the default catalog")
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	span := logging.Span{Stage: "master", Keys: len(def.Keys())}
	span.Begin(ctx)

	master, err := GenerateMaster(def, modules, res.Audit, opts)

	span.End()
	span.Bytes = len(master)
	span.Error = err
	span.Log()

	if err != nil {
		return nil, err
	}

	if err := res.collect(master, opts); err != nil {
		return nil, err
	}

	logger.Info().
		Int("languages", len(res.Languages)).
		Int("untranslated", res.Audit.Total()).
		Msg("Generation complete")

	return res, nil
}

// generateLanguages loads and generates every catalog in paths, at most
// opts.Workers at a time. Modules are returned sorted by language.
func generateLanguages(ctx context.Context, paths []string, def *catalog.Catalog, opts Options) ([]*LanguageModule, []*catalog.Catalog, error) {
	var (
		g        errgroup.Group
		modules  = make([]*LanguageModule, len(paths))
		catalogs = make([]*catalog.Catalog, len(paths))
		errs     = make([]error, len(paths))
	)

	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err

				return nil
			}

			span := logging.Span{Stage: "language", Language: catalog.LanguageOf(path)}
			span.Begin(ctx)

			defer func() {
				span.End()
				span.Log()
			}()

			c := def
			if path != def.Path {
				loaded, err := catalog.Load(path)
				if err != nil {
					errs[i], span.Error = err, err

					return nil
				}

				c = loaded
			}

			m, err := GenerateLanguage(c, def, opts)
			if err != nil {
				errs[i], span.Error = err, err

				return nil
			}

			span.Keys = len(m.Keys)
			span.Bytes = len(m.Source)
			modules[i], catalogs[i] = m, c

			return nil
		})
	}

	// Goroutines always return nil; failures are kept per index in errs so
	// that every language is reported, in catalog order.
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, nil, err
	}

	slices.SortFunc(modules, func(a, b *LanguageModule) int {
		return cmp.Compare(a.Language, b.Language)
	})

	return modules, catalogs, nil
}

func (r *Result) collect(master []byte, opts Options) error {
	for _, m := range r.Modules {
		r.Artifacts = append(r.Artifacts, Artifact{
			Path: filepath.Join(opts.OutputDir, emit.FileName(m.Language)),
			Data: m.Source,
		})
	}

	r.Artifacts = append(r.Artifacts, Artifact{
		Path: filepath.Join(opts.OutputDir, emit.MasterFileName),
		Data: master,
	})

	auditData, err := audit.Marshal(r.Audit)
	if err != nil {
		return err
	}

	r.Artifacts = append(r.Artifacts, Artifact{Path: opts.AuditFile, Data: auditData})

	if opts.ReportFile != "" {
		r.Artifacts = append(r.Artifacts, Artifact{
			Path: opts.ReportFile,
			Data: []byte(audit.Report(opts.DefaultLanguage, r.Statuses)),
		})
	}

	return nil
}
