// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/oauth1d/pkg/authserver/runconfig"
)

// newValidateCmd creates the validate command for checking configuration
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Long: `Validate the configuration file and OAUTH1D_* environment overrides.

This command checks:
- YAML/JSON syntax validity
- Durations and cache settings
- That the Redis password file, if any, is readable

It does not connect to Redis or open the database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if _, err := runconfig.BuildPublicURL(cfg); err != nil {
				return err
			}
			if _, err := runconfig.BuildCacheConfig(&cfg.Cache); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
			return nil
		},
	}
}
