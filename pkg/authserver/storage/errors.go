// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"errors"
	"net/http"

	"github.com/stacklok/toolhive-core/httperr"
)

var (
	// ErrNotFound is returned when a key, credential or client does not exist
	// or has expired. Expired entries are indistinguishable from missing ones.
	ErrNotFound = httperr.WithCode(
		errors.New("storage: not found"),
		http.StatusNotFound,
	)

	// ErrAlreadyExists is returned by put-if-absent operations when the key is taken.
	ErrAlreadyExists = httperr.WithCode(
		errors.New("storage: already exists"),
		http.StatusConflict,
	)

	// ErrConflict is returned when a compare-and-swap lost a race with a
	// concurrent writer.
	ErrConflict = httperr.WithCode(
		errors.New("storage: concurrent modification"),
		http.StatusConflict,
	)

	// ErrAlreadyAuthorized is returned when a temporary credential already
	// carries a verifier.
	ErrAlreadyAuthorized = httperr.WithCode(
		errors.New("storage: temporary credential already authorized"),
		http.StatusConflict,
	)

	// ErrVerifierMismatch is returned when the supplied verifier does not match
	// the stored one, including when no verifier was ever attached.
	ErrVerifierMismatch = httperr.WithCode(
		errors.New("storage: verifier mismatch"),
		http.StatusUnauthorized,
	)
)
