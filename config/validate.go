// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"go/token"
	"runtime"
	"slices"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/locallang/core/catalog"
	"codeberg.org/pixivfe/locallang/core/placeholder"
)

// validation errors.
var (
	errEmptyPath          = errors.New("path cannot be empty")
	errInvalidPackageName = errors.New("invalid Generator.Package value")
	errInvalidWorkers     = errors.New("Generator.Workers cannot be negative")
	errInvalidLogLevel    = errors.New("invalid Log.Level value")
	errInvalidLogFormat   = errors.New("invalid Log.Format value")
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"console", "json"}
)

// validateAndSet validates the configuration and populates derived fields.
func (cfg *Config) validateAndSet() error {
	if err := catalog.ValidateLanguage(cfg.Localisation.DefaultLanguage); err != nil {
		return fmt.Errorf("Localisation.DefaultLanguage: %w", err)
	}

	for name, path := range map[string]string{
		"Paths.CatalogDir": cfg.Paths.CatalogDir,
		"Paths.OutputDir":  cfg.Paths.OutputDir,
		"Paths.AuditFile":  cfg.Paths.AuditFile,
	} {
		if path == "" {
			return fmt.Errorf("%s: %w", name, errEmptyPath)
		}
	}

	if !token.IsIdentifier(cfg.Generator.Package) || cfg.Generator.Package == "_" {
		return fmt.Errorf("%w: %q", errInvalidPackageName, cfg.Generator.Package)
	}

	mode, err := placeholder.ParseMode(cfg.Generator.RawPlaceholders)
	if err != nil {
		return fmt.Errorf("Generator.Placeholders: %w", err)
	}

	cfg.Generator.Placeholders = mode

	switch {
	case cfg.Generator.Workers < 0:
		return errInvalidWorkers
	case cfg.Generator.Workers == 0:
		cfg.Generator.Workers = runtime.NumCPU()
		log.Info().
			Int("workers", cfg.Generator.Workers).
			Msg("Using one worker per CPU")
	}

	if !slices.Contains(logLevels, cfg.Log.Level) {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	if !slices.Contains(logFormats, cfg.Log.Format) {
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	return nil
}
