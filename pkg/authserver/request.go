// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/stacklok/oauth1d/pkg/authserver/signature"
)

// OAuth protocol parameter names.
const (
	ParamConsumerKey       = "oauth_consumer_key"
	ParamToken             = "oauth_token"
	ParamTokenSecret       = "oauth_token_secret"
	ParamSignatureMethod   = "oauth_signature_method"
	ParamSignature         = "oauth_signature"
	ParamTimestamp         = "oauth_timestamp"
	ParamNonce             = "oauth_nonce"
	ParamVersion           = "oauth_version"
	ParamCallback          = "oauth_callback"
	ParamCallbackConfirmed = "oauth_callback_confirmed"
	ParamVerifier          = "oauth_verifier"
)

// OutOfBand is the oauth_callback value for clients that cannot receive a redirect.
const OutOfBand = "oob"

const (
	protocolParamPrefix      = "oauth_"
	supportedProtocolVersion = "1.0"
)

// Where the protocol parameters of a request were found.
const (
	SignatureTypeHeader = "HEADER"
	SignatureTypeBody   = "BODY"
	SignatureTypeQuery  = "QUERY"
)

// Request is a transport-neutral OAuth 1.0a request.
type Request struct {
	// Method is the HTTP method.
	Method string

	// URI is the absolute request URI including the query string.
	URI string

	// Body holds the form parameters. It must only be set for
	// application/x-www-form-urlencoded bodies.
	Body url.Values

	// Header holds the request headers.
	Header http.Header

	realm         string
	signatureType string
	oauthParams   url.Values
	params        url.Values
	err           *Error
}

// NewRequest parses the protocol parameters of a request. Parse failures are
// kept and reported by Server when the request is processed.
func NewRequest(method, uri string, body url.Values, header http.Header) *Request {
	if header == nil {
		header = http.Header{}
	}
	req := &Request{
		Method: strings.ToUpper(method),
		URI:    uri,
		Body:   body,
		Header: header,
	}
	req.err = req.parse()
	return req
}

func (r *Request) parse() *Error {
	u, err := url.Parse(r.URI)
	if err != nil {
		return ErrInvalidRequest.WithHint("The request URI is malformed.").WithWrap(err)
	}
	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return ErrInvalidRequest.WithHint("The query string is malformed.").WithWrap(err)
	}

	var authParams url.Values
	if values := r.Header.Values("Authorization"); len(values) > 0 {
		parsed, ok, err := signature.ParseAuthorizationHeader(values[0])
		if err != nil {
			return ErrInvalidRequest.WithHint("The Authorization header is malformed.").WithWrap(err)
		}
		if ok {
			r.realm = parsed.Get(signature.ParamRealm)
			parsed.Del(signature.ParamRealm)
			authParams = parsed
		}
	}

	// The signature covers every parameter from every source.
	r.params = url.Values{}
	for _, src := range []url.Values{query, r.Body, authParams} {
		for name, values := range src {
			r.params[name] = append(r.params[name], values...)
		}
	}

	// Protocol parameters must come from exactly one source.
	var found []string
	for _, src := range []struct {
		kind   string
		values url.Values
	}{
		{SignatureTypeHeader, authParams},
		{SignatureTypeBody, r.Body},
		{SignatureTypeQuery, query},
	} {
		oauth := filterProtocolParams(src.values)
		if len(oauth) == 0 {
			continue
		}
		found = append(found, src.kind)
		if r.oauthParams == nil {
			r.signatureType = src.kind
			r.oauthParams = oauth
		}
	}
	if len(found) > 1 {
		return ErrDuplicatedParameter.WithHint(fmt.Sprintf(
			"OAuth protocol parameters must come from one location but were found in %s.",
			strings.Join(found, ", ")))
	}
	if r.oauthParams == nil {
		r.oauthParams = url.Values{}
	}

	names := make([]string, 0, len(r.oauthParams))
	for name, values := range r.oauthParams {
		if len(values) > 1 {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		slices.Sort(names)
		return ErrDuplicatedParameter.WithHint(fmt.Sprintf(
			"Duplicated OAuth protocol parameters: %s.", strings.Join(names, ", ")))
	}
	return nil
}

func filterProtocolParams(values url.Values) url.Values {
	out := url.Values{}
	for name, v := range values {
		if strings.HasPrefix(name, protocolParamPrefix) {
			out[name] = slices.Clone(v)
		}
	}
	return out
}

// Err returns the error found while parsing the request, if any.
func (r *Request) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// OAuthParam returns the protocol parameter name, or "".
func (r *Request) OAuthParam(name string) string {
	return r.oauthParams.Get(name)
}

// Params returns every request parameter used for the signature base string.
func (r *Request) Params() url.Values {
	return r.params
}

// Realm returns the realm from the Authorization header, if any.
func (r *Request) Realm() string {
	return r.realm
}

// SignatureType reports where the protocol parameters were found.
func (r *Request) SignatureType() string {
	return r.signatureType
}

// ClientID returns oauth_consumer_key.
func (r *Request) ClientID() string { return r.OAuthParam(ParamConsumerKey) }

// Token returns oauth_token.
func (r *Request) Token() string { return r.OAuthParam(ParamToken) }

// SignatureMethod returns oauth_signature_method.
func (r *Request) SignatureMethod() string { return r.OAuthParam(ParamSignatureMethod) }

// Signature returns oauth_signature.
func (r *Request) Signature() string { return r.OAuthParam(ParamSignature) }

// Timestamp returns oauth_timestamp.
func (r *Request) Timestamp() string { return r.OAuthParam(ParamTimestamp) }

// Nonce returns oauth_nonce.
func (r *Request) Nonce() string { return r.OAuthParam(ParamNonce) }

// Callback returns oauth_callback.
func (r *Request) Callback() string { return r.OAuthParam(ParamCallback) }

// Verifier returns oauth_verifier.
func (r *Request) Verifier() string { return r.OAuthParam(ParamVerifier) }
