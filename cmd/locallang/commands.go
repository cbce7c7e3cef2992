// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/locallang/config"
	"codeberg.org/pixivfe/locallang/core/audit"
	"codeberg.org/pixivfe/locallang/core/bootstrap"
	"codeberg.org/pixivfe/locallang/core/pipeline"
)

var (
	errStale          = errors.New("generated files are out of date")
	errPreviewMissing = errors.New("preview needs -lang and -key")
)

func runDefault(ctx context.Context, cfg *config.Config) error {
	if err := runInit(cfg); err != nil {
		return err
	}

	if !cfg.Localisation.ReloadOnLaunch {
		log.Debug().Msg("reloadOnLaunch is off, skipping generation")

		return nil
	}

	return generate(ctx, cfg)
}

func runInit(cfg *config.Config) error {
	if _, err := bootstrap.Ensure(cfg.Layout()); err != nil {
		return fmt.Errorf("failed to prepare project: %w", err)
	}

	return nil
}

func runGenerate(ctx context.Context, cfg *config.Config) error {
	if err := runInit(cfg); err != nil {
		return err
	}

	return generate(ctx, cfg)
}

func generate(ctx context.Context, cfg *config.Config) error {
	res, err := pipeline.Run(ctx, cfg.PipelineOptions())
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	return res.Write()
}

func runCheck(ctx context.Context, cfg *config.Config) error {
	res, err := pipeline.Run(ctx, cfg.PipelineOptions())
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	stale, err := res.Stale()
	if err != nil {
		return err
	}

	for _, path := range stale {
		log.Error().Str("path", path).Msg("Out of date")
	}

	if len(stale) > 0 {
		return fmt.Errorf("%w: %d file(s), run locallang generate", errStale, len(stale))
	}

	log.Info().Int("files", len(res.Artifacts)).Msg("Generated files are up to date")

	return nil
}

func runAudit(ctx context.Context, cfg *config.Config, out io.Writer) error {
	res, err := pipeline.Run(ctx, cfg.PipelineOptions())
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	data, err := audit.Marshal(res.Audit)
	if err != nil {
		return err
	}

	_, err = out.Write(data)

	return err
}

func runPreview(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	lang := fs.String("lang", cfg.Localisation.DefaultLanguage, "Language to render.")
	key := fs.String("key", "", "Translation key to render.")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *lang == "" || *key == "" {
		return errPreviewMissing
	}

	text, err := pipeline.Preview(cfg.PipelineOptions(), *lang, *key, fs.Args())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, text)

	return err
}

func runConfig(cfg *config.Config, out io.Writer) error {
	data, err := cfg.YAML()
	if err != nil {
		return err
	}

	_, err = out.Write(data)

	return err
}
