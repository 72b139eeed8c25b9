// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the oauth1d command-line application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/oauth1d/pkg/authserver/runconfig"
	"github.com/stacklok/oauth1d/pkg/logger"
)

// NewRootCmd creates a new root command for the oauth1d CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "oauth1d",
		DisableAutoGenTag: true,
		Short:             "oauth1d is an OAuth 1.0a authorization server",
		Long: `oauth1d implements the three-legged OAuth 1.0a flow (RFC 5849).

It issues temporary credentials, lets resource owners approve them, exchanges
approved credentials for token credentials and verifies signed requests made
with those tokens. Temporary credentials and nonces live in memory or Redis so
several replicas can share them; clients and token credentials live in SQLite.`,
		Run: func(cmd *cobra.Command, _ []string) {
			// If no subcommand is provided, print help
			if err := cmd.Help(); err != nil {
				logger.Errorw("error displaying help", "error", err)
			}
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.Initialize()
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorw("error binding debug flag", "error", err)
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newClientCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Silence printing the usage on error
	rootCmd.SilenceUsage = true

	return rootCmd
}

// loadConfig reads the file named by --config merged with OAUTH1D_*
// environment variables.
func loadConfig(cmd *cobra.Command) (*runconfig.RunConfig, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return runconfig.Load(viper.New(), path)
}
