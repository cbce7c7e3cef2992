// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"codeberg.org/pixivfe/locallang/core/logging"
)

const (
	artifactFilePermissions = 0o644
	outputDirPermissions    = 0o755
)

// Write writes every artifact, replacing existing files.
func (r *Result) Write() error {
	logger := logging.Sys("pipeline")

	for _, a := range r.Artifacts {
		if err := os.MkdirAll(filepath.Dir(a.Path), outputDirPermissions); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", a.Path, err)
		}

		if err := os.WriteFile(a.Path, a.Data, artifactFilePermissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", a.Path, err)
		}

		logger.Debug().
			Str("path", a.Path).
			Str("len", logging.HumanizeSize(len(a.Data))).
			Msg("Wrote artifact")
	}

	return nil
}

// Stale returns the artifacts whose file is missing or differs from the generated data.
func (r *Result) Stale() ([]string, error) {
	var stale []string

	for _, a := range r.Artifacts {
		data, err := os.ReadFile(a.Path)

		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale = append(stale, a.Path)
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", a.Path, err)
		case !bytes.Equal(data, a.Data):
			stale = append(stale, a.Path)
		}
	}

	return stale, nil
}
