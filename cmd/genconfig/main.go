// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Genconfig writes the example configuration files shipped with locallang.
package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/locallang/config"
	"codeberg.org/pixivfe/locallang/core/logging"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/locallang.yaml.example"
	filePerm       = 0o644
	dirPerm        = 0o755
)

func main() {
	logging.SetDefaultLogger()

	if err := os.MkdirAll("deploy", dirPerm); err != nil {
		log.Fatal().Err(err).Msg("Failed to create deploy directory")
	}

	if err := os.WriteFile(envOutputFile, []byte(config.EnvExample()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", envOutputFile).Msg("Failed to write .env.example file")
	}

	log.Info().Str("path", envOutputFile).Msg("Successfully generated .env.example")

	yamlExample, err := config.YAMLExample()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate example configuration")
	}

	if err := os.WriteFile(yamlOutputFile, []byte(yamlExample), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", yamlOutputFile).Msg("Failed to write config file")
	}

	log.Info().Str("path", yamlOutputFile).Msg("Successfully generated locallang.yaml.example")
}
