// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/stacklok/oauth1d/pkg/authserver/storage"
)

// Directory implements storage.Directory using SQLite.
type Directory struct {
	wrapper *DB
	db      *sql.DB
}

// NewDirectory creates a new SQLite-backed Directory.
func NewDirectory(db *DB) *Directory {
	return &Directory{wrapper: db, db: db.DB()}
}

// Ping checks the database connection.
func (d *Directory) Ping(ctx context.Context) error {
	return d.wrapper.Ping(ctx)
}

// Close closes the underlying database connection.
func (d *Directory) Close() error {
	return d.wrapper.Close()
}

var _ storage.Directory = (*Directory)(nil)

const clientColumns = `id, secret, rsa_public_key, name, default_redirect_uri, created_at`

// GetClient returns the client with the given identifier.
func (d *Directory) GetClient(ctx context.Context, id string) (*storage.Client, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	client, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: client %q", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying client: %w", err)
	}
	return client, nil
}

// RegisterClient inserts a new client.
func (d *Directory) RegisterClient(ctx context.Context, client *storage.Client) error {
	if client == nil || strings.TrimSpace(client.ID) == "" {
		return errors.New("client ID is required")
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now().UTC()
	}

	_, err := d.db.ExecContext(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		client.ID,
		client.Secret,
		client.RSAPublicKey,
		client.Name,
		client.DefaultRedirectURI,
		client.CreatedAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: client %q", storage.ErrAlreadyExists, client.ID)
		}
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

// ListClients returns every client ordered by ID.
func (d *Directory) ListClients(ctx context.Context) ([]*storage.Client, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*storage.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return clients, nil
}

// DeleteClient removes a client. Token credentials issued to it are revoked
// in the same transaction.
func (d *Directory) DeleteClient(ctx context.Context, id string) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollback(tx)

	res, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	if err := requireAffected(res, fmt.Sprintf("client %q", id)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM token_credentials WHERE client_id = ?`, id); err != nil {
		return fmt.Errorf("revoking client token credentials: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

const tokenColumns = `id, token, token_secret, client_id, user_id, created_at`

// CreateTokenCredential persists cred and assigns its ID.
func (d *Directory) CreateTokenCredential(ctx context.Context, cred *storage.TokenCredential) error {
	if cred == nil || cred.Token == "" {
		return errors.New("token credential with a token is required")
	}
	id := cred.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := cred.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := d.db.ExecContext(ctx,
		`INSERT INTO token_credentials (`+tokenColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		cred.Token,
		cred.TokenSecret,
		cred.ClientID,
		cred.UserID,
		createdAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: token credential", storage.ErrAlreadyExists)
		}
		return fmt.Errorf("inserting token credential: %w", err)
	}

	cred.ID = id
	cred.CreatedAt = createdAt
	return nil
}

// GetTokenCredential returns the credential for token.
func (d *Directory) GetTokenCredential(ctx context.Context, token string) (*storage.TokenCredential, error) {
	var (
		cred      storage.TokenCredential
		createdAt int64
	)
	err := d.db.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM token_credentials WHERE token = ?`, token,
	).Scan(&cred.ID, &cred.Token, &cred.TokenSecret, &cred.ClientID, &cred.UserID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: token credential", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying token credential: %w", err)
	}
	cred.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &cred, nil
}

// DeleteTokenCredential revokes the credential for token.
func (d *Directory) DeleteTokenCredential(ctx context.Context, token string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM token_credentials WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("deleting token credential: %w", err)
	}
	return requireAffected(res, "token credential")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (*storage.Client, error) {
	var (
		client    storage.Client
		createdAt int64
	)
	if err := row.Scan(
		&client.ID,
		&client.Secret,
		&client.RSAPublicKey,
		&client.Name,
		&client.DefaultRedirectURI,
		&createdAt,
	); err != nil {
		return nil, err
	}
	client.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &client, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, what)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite3.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// rollback rolls back tx, ignoring errors (tx may already be committed).
func rollback(tx *sql.Tx) { _ = tx.Rollback() }
