// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/stacklok/oauth1d/pkg/authserver/runconfig"
	"github.com/stacklok/oauth1d/pkg/authserver/signature"
	"github.com/stacklok/oauth1d/pkg/authserver/storage"
	"github.com/stacklok/oauth1d/pkg/authserver/tokens"
	"github.com/stacklok/oauth1d/pkg/logger"
)

type clientAddOptions struct {
	id                 string
	name               string
	secret             string
	rsaPublicKeyFile   string
	defaultRedirectURI string
}

func newClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage registered clients",
		Long: `Manage the clients (consumers) registered in the database configured by
database.path. Removing a client revokes every token credential issued to it.`,
	}
	cmd.AddCommand(newClientAddCmd())
	cmd.AddCommand(newClientListCmd())
	cmd.AddCommand(newClientRemoveCmd())
	return cmd
}

func newClientAddCmd() *cobra.Command {
	opts := &clientAddOptions{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a client",
		Long: `Register a client and print its credentials.

A shared secret is generated unless --secret is given. The secret is only
shown once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClientAdd(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.id, "id", "", "Client identifier (default: a random UUID)")
	cmd.Flags().StringVar(&opts.name, "name", "", "Human readable client name")
	cmd.Flags().StringVar(&opts.secret, "secret", "", "Shared secret (default: generated)")
	cmd.Flags().StringVar(&opts.rsaPublicKeyFile, "rsa-public-key-file", "",
		"PEM encoded RSA public key used to verify RSA-SHA1 signatures")
	cmd.Flags().StringVar(&opts.defaultRedirectURI, "default-redirect-uri", "",
		"Where to redirect after authorization when the client sent oauth_callback=oob")
	return cmd
}

func newClientListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered clients",
		Args:    cobra.NoArgs,
		RunE:    runClientList,
	}
}

func newClientRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove [client-id]",
		Aliases: []string{"rm"},
		Short:   "Remove a client and revoke its token credentials",
		Args:    cobra.ExactArgs(1),
		RunE:    runClientRemove,
	}
}

func runClientAdd(cmd *cobra.Command, opts *clientAddOptions) error {
	client := &storage.Client{
		ID:                 opts.id,
		Name:               opts.name,
		Secret:             opts.secret,
		DefaultRedirectURI: opts.defaultRedirectURI,
	}
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	if client.DefaultRedirectURI != "" {
		if err := validateRedirectURI(client.DefaultRedirectURI); err != nil {
			return err
		}
	}
	if opts.rsaPublicKeyFile != "" {
		// #nosec G304 - path comes from the operator
		data, err := os.ReadFile(opts.rsaPublicKeyFile)
		if err != nil {
			return fmt.Errorf("failed to read RSA public key: %w", err)
		}
		if _, err := signature.ParseRSAPublicKey(string(data)); err != nil {
			return fmt.Errorf("invalid RSA public key: %w", err)
		}
		client.RSAPublicKey = string(data)
	}
	if client.Secret == "" {
		gen, err := tokens.NewRandomGenerator()
		if err != nil {
			return err
		}
		if _, client.Secret, err = gen.NewTokenPair(); err != nil {
			return fmt.Errorf("failed to generate client secret: %w", err)
		}
	}

	dir, err := openDirectory(cmd)
	if err != nil {
		return err
	}
	defer closeDirectory(dir)

	if err := dir.RegisterClient(cmd.Context(), client); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("client %q already exists", client.ID)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Client ID:     %s\n", client.ID)
	fmt.Fprintf(out, "Client secret: %s\n", client.Secret)
	return nil
}

func runClientList(cmd *cobra.Command, _ []string) error {
	dir, err := openDirectory(cmd)
	if err != nil {
		return err
	}
	defer closeDirectory(dir)

	clients, err := dir.ListClients(cmd.Context())
	if err != nil {
		return err
	}
	return renderClientTable(cmd.OutOrStdout(), clients)
}

func runClientRemove(cmd *cobra.Command, args []string) error {
	dir, err := openDirectory(cmd)
	if err != nil {
		return err
	}
	defer closeDirectory(dir)

	if err := dir.DeleteClient(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("client %q not found", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Client %s removed\n", args[0])
	return nil
}

// openDirectory opens the configured database. Client management requires a
// persistent database; an in-memory directory would be discarded on exit.
func openDirectory(cmd *cobra.Command) (storage.Directory, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Database.Path == "" {
		return nil, errors.New("database.path must be configured to manage clients")
	}
	return runconfig.BuildDirectory(cmd.Context(), &cfg.Database)
}

func closeDirectory(dir storage.Directory) {
	if err := dir.Close(); err != nil {
		logger.Warnw("failed to close database", "error", err)
	}
}

func validateRedirectURI(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("default redirect URI must be an absolute http(s) URL, got %q", raw)
	}
	return nil
}

func renderClientTable(w io.Writer, clients []*storage.Client) error {
	if len(clients) == 0 {
		fmt.Fprintln(w, "No clients registered.")
		return nil
	}

	headers := []string{"ID", "Name", "Methods", "Default Redirect URI", "Created"}
	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithHeader(headers),
		tablewriter.WithRendition(
			tw.Rendition{
				Borders: tw.Border{
					Left:   tw.State(1),
					Top:    tw.State(1),
					Right:  tw.State(1),
					Bottom: tw.State(1),
				},
			},
		),
		tablewriter.WithAlignment(tw.MakeAlign(len(headers), tw.AlignLeft)),
	)

	for _, c := range clients {
		if err := table.Append([]string{
			c.ID,
			c.Name,
			clientMethods(c),
			c.DefaultRedirectURI,
			c.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// clientMethods lists the signature methods the client has key material for.
func clientMethods(c *storage.Client) string {
	var methods []string
	if c.Secret != "" {
		methods = append(methods, signature.MethodHMACSHA1, signature.MethodPlaintext)
	}
	if c.RSAPublicKey != "" {
		methods = append(methods, signature.MethodRSASHA1)
	}
	return strings.Join(methods, ", ")
}
