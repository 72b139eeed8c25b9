// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import "time"

// Operation names reported to an Observer.
const (
	OperationTemporaryCredential = "temporary_credential"
	OperationAuthorize           = "authorize"
	OperationTokenCredential     = "token_credential"
	OperationProtectedResource   = "protected_resource"
	OperationRevoke              = "revoke"
)

// OutcomeSuccess is the outcome reported for operations that succeed.
// Failures report the protocol error code.
const OutcomeSuccess = "success"

// Observer receives one event per server operation.
type Observer interface {
	Observe(operation, outcome string, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) Observe(string, string, time.Duration) {}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	return AsError(err).Code
}
