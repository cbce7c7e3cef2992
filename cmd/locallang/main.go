// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Locallang generates typed Go accessors from translation catalogs.

Usage:

	locallang [-config file] [command]

With no command, the project layout is created if missing, and a full
generation runs when localisation.reloadOnLaunch is set. Commands:

	init      create the catalog directory, the default catalog and the audit file
	generate  generate every language file, the dispatch file and the audit file
	check     exit non-zero if any generated file is out of date
	audit     print the untranslated keys as JSON
	preview   render one key: preview -lang fr_fr -key hello name=Ann
	config    print the effective configuration
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/locallang/config"
	"codeberg.org/pixivfe/locallang/core/logging"
)

var errUnknownCommand = errors.New("unknown command")

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("locallang failed")
	}
}

func run() error {
	logging.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &config.Global
	args := flag.Args()

	if len(args) == 0 {
		return runDefault(ctx, cfg)
	}

	switch args[0] {
	case "init":
		return runInit(cfg)
	case "generate":
		return runGenerate(ctx, cfg)
	case "check":
		return runCheck(ctx, cfg)
	case "audit":
		return runAudit(ctx, cfg, os.Stdout)
	case "preview":
		return runPreview(cfg, args[1:], os.Stdout)
	case "config":
		return runConfig(cfg, os.Stdout)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, args[0])
	}
}
