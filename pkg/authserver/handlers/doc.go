// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package handlers exposes an authserver.Server over HTTP.
//
// Endpoints:
//
//	POST /oauth/initiate    temporary credential request (RFC 5849 section 2.1)
//	GET  /oauth/authorize   pending authorization lookup
//	POST /oauth/authorize   resource owner approval or denial (section 2.2)
//	POST /oauth/token       token credential request (section 2.3)
//	GET  /oauth/identity    protected resource describing the signing credential
//	POST /oauth/revoke      revokes the token credential that signed the request
//	GET  /healthz           storage health
//
// Responses are application/x-www-form-urlencoded and never cached. The
// authorize endpoint does not render a consent page: the resource owner is
// identified by a UserResolver, typically a header set by an authenticating
// reverse proxy, and the caller decides whether to approve.
package handlers
