// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"

	"codeberg.org/pixivfe/locallang/core/bootstrap"
	"codeberg.org/pixivfe/locallang/core/pipeline"
	"codeberg.org/pixivfe/locallang/core/placeholder"
)

// Global exposes the configuration.
var Global Config

const (
	defaultConfigPath         = "./locallang.yaml"
	defaultConfigFallbackPath = "./locallang.yml"
	configFileEnvVar          = "LOCALLANG_CONFIGFILE"
)

// Config holds the application configuration.
type Config struct {
	Build buildInfo `toml:"-" yaml:"-"`

	Localisation struct {
		DefaultLanguage string `env:"LOCALLANG_DEFAULT_LANGUAGE,overwrite" toml:"defaultLanguage" yaml:"defaultLanguage"`
		// Generate on every launch, not only through the generate command.
		ReloadOnLaunch bool `env:"LOCALLANG_RELOAD_ON_LAUNCH,overwrite" toml:"reloadOnLaunch" yaml:"reloadOnLaunch"`
	} `toml:"localisation" yaml:"localisation"`

	Paths struct {
		CatalogDir string `env:"LOCALLANG_CATALOG_DIR,overwrite" toml:"catalogDir" yaml:"catalogDir"`
		OutputDir  string `env:"LOCALLANG_OUTPUT_DIR,overwrite"  toml:"outputDir"  yaml:"outputDir"`
		AuditFile  string `env:"LOCALLANG_AUDIT_FILE,overwrite"  toml:"auditFile"  yaml:"auditFile"`
		ReportFile string `env:"LOCALLANG_REPORT_FILE,overwrite" toml:"reportFile" yaml:"reportFile"`
	} `toml:"paths" yaml:"paths"`

	Generator struct {
		Package         string           `env:"LOCALLANG_PACKAGE,overwrite"      toml:"package"      yaml:"package"`
		RawPlaceholders string           `env:"LOCALLANG_PLACEHOLDERS,overwrite" toml:"placeholders" yaml:"placeholders"`
		Placeholders    placeholder.Mode `toml:"-"                               yaml:"-"`
		Workers         int              `env:"LOCALLANG_WORKERS,overwrite"      toml:"workers"      yaml:"workers"`
	} `toml:"generator" yaml:"generator"`

	Log struct {
		Level   string   `env:"LOCALLANG_LOG_LEVEL,overwrite"   toml:"logLevel"   yaml:"logLevel"`
		Outputs []string `env:"LOCALLANG_LOG_OUTPUTS,overwrite" toml:"logOutputs" yaml:"logOutputs"`
		Format  string   `env:"LOCALLANG_LOG_FORMAT,overwrite"  toml:"logFormat"  yaml:"logFormat"`
	} `toml:"log" yaml:"log"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *Config) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	// Check if the -config flag was explicitly set by the user.
	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	return cfg.load(resolveConfigPath(parsedConfigFlagValue, configFlagUserSet))
}

// resolveConfigPath determines the config file path with the correct precedence:
//  1. Command-line flag (-config)
//  2. Environment variable (LOCALLANG_CONFIGFILE)
//  3. Default path with fallback check
func resolveConfigPath(flagValue string, flagUserSet bool) string {
	if flagUserSet {
		return flagValue
	}

	if envVar := os.Getenv(configFileEnvVar); envVar != "" {
		return envVar
	}

	if _, err := os.Stat(defaultConfigPath); os.IsNotExist(err) {
		if _, statErr := os.Stat(defaultConfigFallbackPath); statErr == nil {
			return defaultConfigFallbackPath
		}
	}

	return defaultConfigPath
}

func (cfg *Config) load(configFilePath string) error {
	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readFile(configFilePath); err != nil {
		return fmt.Errorf("error loading config file: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupLogging()

	cfg.print()

	return nil
}

// PipelineOptions returns the options of a generation run.
func (cfg *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		DefaultLanguage: cfg.Localisation.DefaultLanguage,
		CatalogDir:      cfg.Paths.CatalogDir,
		OutputDir:       cfg.Paths.OutputDir,
		AuditFile:       cfg.Paths.AuditFile,
		ReportFile:      cfg.Paths.ReportFile,
		Package:         cfg.Generator.Package,
		Mode:            cfg.Generator.Placeholders,
		Workers:         cfg.Generator.Workers,
	}
}

// Layout returns the project layout prepared by package bootstrap.
func (cfg *Config) Layout() bootstrap.Layout {
	return bootstrap.Layout{
		DefaultLanguage: cfg.Localisation.DefaultLanguage,
		CatalogDir:      cfg.Paths.CatalogDir,
		OutputDir:       cfg.Paths.OutputDir,
		AuditFile:       cfg.Paths.AuditFile,
	}
}
