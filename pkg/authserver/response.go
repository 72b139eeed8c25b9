// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/stacklok/oauth1d/pkg/authserver/signature"
)

// Response is a transport-neutral response produced by Server.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// Body is rendered as application/x-www-form-urlencoded. Nil means no body.
	Body url.Values

	// Header holds additional response headers, e.g. Location.
	Header http.Header
}

// Location returns the redirect target of a 302 response.
func (r *Response) Location() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Location")
}

// ErrorResponse renders err. 401 responses advertise realm in WWW-Authenticate.
func ErrorResponse(err error, realm string) *Response {
	e := AsError(err)
	resp := &Response{Status: e.Status, Body: e.Body(), Header: http.Header{}}
	if e.Status == http.StatusUnauthorized {
		resp.Header.Set("WWW-Authenticate", fmt.Sprintf(`%s realm="%s"`, signature.AuthScheme, realm))
	}
	return resp
}

func redirectResponse(target string, params url.Values) (*Response, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI: %w", err)
	}
	q := u.Query()
	for name, values := range params {
		for _, v := range values {
			q.Add(name, v)
		}
	}
	u.RawQuery = q.Encode()
	return &Response{
		Status: http.StatusFound,
		Header: http.Header{"Location": {u.String()}},
	}, nil
}
