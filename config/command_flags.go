// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "flag"

// parseCommandLineArgs defines and parses flags, returning the value of the "config" flag.
//
// Arguments after the flags are left in flag.Args for the command dispatcher.
func parseCommandLineArgs() string {
	if flag.Lookup("config") == nil {
		flag.String("config", defaultConfigPath, "Path to a locallang configuration file in YAML or TOML format.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	return flag.Lookup("config").Value.String()
}
