// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "codeberg.org/pixivfe/locallang/core/placeholder"

const defaultWorkers = 4

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Localisation.DefaultLanguage = "en_us"
	cfg.Localisation.ReloadOnLaunch = false

	cfg.Paths.CatalogDir = "./localisation"
	cfg.Paths.OutputDir = "./local"
	cfg.Paths.AuditFile = "./untranslated.json"
	cfg.Paths.ReportFile = ""

	cfg.Generator.Package = "local"
	cfg.Generator.RawPlaceholders = placeholder.TokenMode.String()
	cfg.Generator.Workers = defaultWorkers

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
