// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package signature

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"
)

// ParamSignature is the protocol parameter excluded from the base string.
const ParamSignature = "oauth_signature"

// BaseString builds the signature base string of RFC 5849 section 3.4.1.
// params must hold every request parameter: query, form body and the
// Authorization header protocol parameters except realm.
func BaseString(method, uri string, params url.Values) (string, error) {
	baseURI, err := BaseStringURI(uri)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{
		Escape(strings.ToUpper(method)),
		Escape(baseURI),
		Escape(NormalizeParameters(params)),
	}, "&"), nil
}

// BaseStringURI returns the scheme, authority and path of uri with the scheme
// and host lower-cased, default ports removed and the query dropped.
func BaseStringURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid request URI: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", errors.New("request URI must be absolute")
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path, nil
}

// NormalizeParameters encodes, sorts and concatenates params as described
// in RFC 5849 section 3.4.1.3.2. oauth_signature is skipped.
func NormalizeParameters(params url.Values) string {
	type pair struct{ name, value string }

	pairs := make([]pair, 0, len(params))
	for name, values := range params {
		if name == ParamSignature {
			continue
		}
		encName := Escape(name)
		for _, v := range values {
			pairs = append(pairs, pair{encName, Escape(v)})
		}
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		if c := strings.Compare(a.name, b.name); c != 0 {
			return c
		}
		return strings.Compare(a.value, b.value)
	})

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.name)
		b.WriteByte('=')
		b.WriteString(p.value)
	}
	return b.String()
}
