// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/locallang/core/placeholder"
)

/*
Tests in this file modify the process environment, so they do not run in parallel.
*/

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.load(""))

	assert.Equal(t, "en_us", cfg.Localisation.DefaultLanguage)
	assert.False(t, cfg.Localisation.ReloadOnLaunch)
	assert.Equal(t, "./localisation", cfg.Paths.CatalogDir)
	assert.Equal(t, "./local", cfg.Paths.OutputDir)
	assert.Equal(t, "./untranslated.json", cfg.Paths.AuditFile)
	assert.Empty(t, cfg.Paths.ReportFile)
	assert.Equal(t, "local", cfg.Generator.Package)
	assert.Equal(t, placeholder.TokenMode, cfg.Generator.Placeholders)
	assert.Equal(t, defaultWorkers, cfg.Generator.Workers)

	opts := cfg.PipelineOptions()
	assert.Equal(t, "./local", opts.OutputDir)
	assert.Equal(t, placeholder.TokenMode, opts.Mode)

	layout := cfg.Layout()
	assert.Equal(t, "en_us", layout.DefaultLanguage)
	assert.Equal(t, "./untranslated.json", layout.AuditFile)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "locallang.yaml", `
localisation:
  defaultLanguage: fr_fr
  reloadOnLaunch: true
paths:
  reportFile: ./STATUS.md
generator:
  package: strings_gen
  placeholders: segment
  workers: 2
`)

	cfg := &Config{}
	require.NoError(t, cfg.load(path))

	assert.Equal(t, "fr_fr", cfg.Localisation.DefaultLanguage)
	assert.True(t, cfg.Localisation.ReloadOnLaunch)
	assert.Equal(t, "./STATUS.md", cfg.Paths.ReportFile)
	assert.Equal(t, "./localisation", cfg.Paths.CatalogDir)
	assert.Equal(t, "strings_gen", cfg.Generator.Package)
	assert.Equal(t, placeholder.SegmentMode, cfg.Generator.Placeholders)
	assert.Equal(t, 2, cfg.Generator.Workers)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "locallang.toml", `
[localisation]
defaultLanguage = "de_de"

[paths]
outputDir = "./i18n"

[log]
logLevel = "warn"
`)

	cfg := &Config{}
	require.NoError(t, cfg.load(path))

	assert.Equal(t, "de_de", cfg.Localisation.DefaultLanguage)
	assert.Equal(t, "./i18n", cfg.Paths.OutputDir)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.load(filepath.Join(t.TempDir(), "absent.yaml")))

	assert.Equal(t, "en_us", cfg.Localisation.DefaultLanguage)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "locallang.yaml", "paths:\n  outputDir: ./from-file\n")

	t.Setenv("LOCALLANG_OUTPUT_DIR", "./from-env")
	t.Setenv("LOCALLANG_WORKERS", "0")
	t.Setenv("LOCALLANG_RELOAD_ON_LAUNCH", "true")
	t.Setenv("LOCALLANG_LOG_OUTPUTS", "/dev/stderr, ,/dev/stdout")

	cfg := &Config{}
	require.NoError(t, cfg.load(path))

	assert.Equal(t, "./from-env", cfg.Paths.OutputDir)
	assert.Equal(t, runtime.NumCPU(), cfg.Generator.Workers)
	assert.True(t, cfg.Localisation.ReloadOnLaunch)
	assert.Equal(t, []string{"/dev/stderr", "/dev/stdout"}, cfg.Log.Outputs)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "invalid default language", key: "LOCALLANG_DEFAULT_LANGUAGE", value: "en-us"},
		{name: "keyword package", key: "LOCALLANG_PACKAGE", value: "func"},
		{name: "blank package", key: "LOCALLANG_PACKAGE", value: "_"},
		{name: "unknown placeholder mode", key: "LOCALLANG_PLACEHOLDERS", value: "regex"},
		{name: "negative workers", key: "LOCALLANG_WORKERS", value: "-1"},
		{name: "non-numeric workers", key: "LOCALLANG_WORKERS", value: "many"},
		{name: "unknown log level", key: "LOCALLANG_LOG_LEVEL", value: "trace"},
		{name: "unknown log format", key: "LOCALLANG_LOG_FORMAT", value: "xml"},
		{name: "empty catalog dir", key: "LOCALLANG_CATALOG_DIR", value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg := &Config{}
			require.Error(t, cfg.load(""))
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(configFileEnvVar, "")

	assert.Equal(t, "custom.yaml", resolveConfigPath("custom.yaml", true))
	assert.Equal(t, defaultConfigPath, resolveConfigPath(defaultConfigPath, false))

	t.Setenv(configFileEnvVar, "/etc/locallang.toml")

	assert.Equal(t, "/etc/locallang.toml", resolveConfigPath(defaultConfigPath, false))
	assert.Equal(t, "custom.yaml", resolveConfigPath("custom.yaml", true))
}

func TestTryLoadDotEnv(t *testing.T) {
	t.Setenv("LOCALLANG_TEST_PRESET", "kept")
	t.Setenv("LOCALLANG_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("LOCALLANG_TEST_DOTENV"))

	path := writeFile(t, ".env", "LOCALLANG_TEST_PRESET=replaced\nLOCALLANG_TEST_DOTENV=\"from file\"\n")

	loaded, err := tryLoadDotEnv(path)
	require.NoError(t, err)
	assert.True(t, loaded)

	assert.Equal(t, "kept", os.Getenv("LOCALLANG_TEST_PRESET"))
	assert.Equal(t, "from file", os.Getenv("LOCALLANG_TEST_DOTENV"))

	loaded, err = tryLoadDotEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestExamples(t *testing.T) {
	env := EnvExample()

	assert.Contains(t, env, "## Localisation\n# LOCALLANG_DEFAULT_LANGUAGE=en_us\n")
	assert.Contains(t, env, "# LOCALLANG_REPORT_FILE=\n")
	assert.Contains(t, env, "# LOCALLANG_LOG_OUTPUTS=/dev/stderr\n")
	assert.NotContains(t, env, "Build")

	yamlExample, err := YAMLExample()
	require.NoError(t, err)

	assert.Contains(t, yamlExample, "\nlocalisation:\n  # defaultLanguage: en_us\n")
	assert.Contains(t, yamlExample, "\ngenerator:\n")
	assert.Contains(t, yamlExample, "  # placeholders: token\n")
}
