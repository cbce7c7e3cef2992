// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package bootstrap prepares a project directory for generation.
package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"codeberg.org/pixivfe/locallang/core/catalog"
	"codeberg.org/pixivfe/locallang/core/logging"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644

	emptyDocument = "{}\n"
)

// Layout names the files and directories of a project.
type Layout struct {
	DefaultLanguage string
	CatalogDir      string
	OutputDir       string
	AuditFile       string
}

// Ensure creates whatever is missing from the layout: the output directory,
// the catalog directory, an empty default catalog and an empty audit file.
// Existing files are left untouched. It returns the paths it created.
func Ensure(l Layout) ([]string, error) {
	logger := logging.Sys("bootstrap")

	var created []string

	for _, dir := range []string{l.OutputDir, l.CatalogDir} {
		ok, err := ensureDir(dir)
		if err != nil {
			return created, err
		}

		if ok {
			created = append(created, dir)
		}
	}

	hasDefault, err := hasCatalog(l.CatalogDir, l.DefaultLanguage)
	if err != nil {
		return created, err
	}

	files := []string{l.AuditFile}
	if !hasDefault {
		files = append([]string{filepath.Join(l.CatalogDir, l.DefaultLanguage+".json")}, files...)
	}

	for _, path := range files {
		ok, err := ensureFile(path)
		if err != nil {
			return created, err
		}

		if ok {
			created = append(created, path)
		}
	}

	for _, path := range created {
		logger.Info().Str("path", path).Msg("Created")
	}

	return created, nil
}

func ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)

	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("%s exists and is not a directory", dir)
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	return true, nil
}

func ensureFile(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePermissions)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.WriteString(emptyDocument); err != nil {
		_ = f.Close()

		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return true, nil
}

// hasCatalog reports whether dir holds a catalog for lang in any supported format.
func hasCatalog(dir, lang string) (bool, error) {
	paths, err := catalog.Discover(dir)
	if err != nil {
		return false, err
	}

	for _, path := range paths {
		if catalog.LanguageOf(path) == lang {
			return true, nil
		}
	}

	return false, nil
}
