// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package signature

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// AuthScheme is the Authorization header scheme for OAuth 1.0a.
const AuthScheme = "OAuth"

// ParamRealm is the Authorization header parameter that is not signed.
const ParamRealm = "realm"

// AuthorizationHeader renders params as an OAuth Authorization header value
// (RFC 5849 section 3.5.1). Parameters are written in sorted order.
func AuthorizationHeader(realm string, params url.Values) string {
	parts := make([]string, 0, len(params)+1)
	if realm != "" {
		parts = append(parts, fmt.Sprintf(`%s="%s"`, ParamRealm, Escape(realm)))
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		for _, v := range params[name] {
			parts = append(parts, fmt.Sprintf(`%s="%s"`, Escape(name), Escape(v)))
		}
	}
	return AuthScheme + " " + strings.Join(parts, ", ")
}

// ParseAuthorizationHeader parses an OAuth Authorization header value. It
// returns ok=false when the header uses another scheme. Values are
// percent-decoded; repeated names are kept so callers can reject them.
func ParseAuthorizationHeader(header string) (params url.Values, ok bool, err error) {
	scheme, rest, _ := strings.Cut(strings.TrimSpace(header), " ")
	if !strings.EqualFold(scheme, AuthScheme) {
		return nil, false, nil
	}

	params = url.Values{}
	for item := range strings.SplitSeq(rest, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, value, found := strings.Cut(item, "=")
		if !found {
			return nil, true, fmt.Errorf("malformed authorization parameter %q", item)
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
			return nil, true, fmt.Errorf("authorization parameter %q must be quoted", name)
		}
		value = value[1 : len(value)-1]

		decodedName, err := Unescape(name)
		if err != nil {
			return nil, true, errors.New("invalid percent-encoding in authorization header")
		}
		decodedValue, err := Unescape(value)
		if err != nil {
			return nil, true, errors.New("invalid percent-encoding in authorization header")
		}
		params.Add(decodedName, decodedValue)
	}
	return params, true, nil
}
