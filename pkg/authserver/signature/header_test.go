// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package signature

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationHeader_RoundTrip(t *testing.T) {
	t.Parallel()
	params := url.Values{
		"oauth_consumer_key": {"dpf43f3p2l4k3l03"},
		"oauth_callback":     {"http://printer.example.com/ready"},
		"oauth_signature":    {"74KNZJeDHnMBp0EMJ9ZHt/XKycU="},
	}

	header := AuthorizationHeader("Photos", params)
	assert.Equal(t,
		`OAuth realm="Photos", oauth_callback="http%3A%2F%2Fprinter.example.com%2Fready", `+
			`oauth_consumer_key="dpf43f3p2l4k3l03", oauth_signature="74KNZJeDHnMBp0EMJ9ZHt%2FXKycU%3D"`,
		header)

	parsed, ok, err := ParseAuthorizationHeader(header)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Photos", parsed.Get(ParamRealm))
	parsed.Del(ParamRealm)
	assert.Equal(t, params, parsed)
}

func TestParseAuthorizationHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		wantOK  bool
		wantErr bool
		want    url.Values
	}{
		{name: "other scheme", header: "Bearer abc"},
		{name: "empty", header: ""},
		{
			name:   "case insensitive scheme",
			header: `oauth oauth_nonce="n"`,
			wantOK: true,
			want:   url.Values{"oauth_nonce": {"n"}},
		},
		{
			name:   "duplicates are kept",
			header: `OAuth oauth_nonce="a", oauth_nonce="b"`,
			wantOK: true,
			want:   url.Values{"oauth_nonce": {"a", "b"}},
		},
		{
			name:   "plus is literal",
			header: `OAuth oauth_token="a+b"`,
			wantOK: true,
			want:   url.Values{"oauth_token": {"a+b"}},
		},
		{name: "unquoted", header: `OAuth oauth_nonce=n`, wantOK: true, wantErr: true},
		{name: "missing value", header: `OAuth oauth_nonce`, wantOK: true, wantErr: true},
		{name: "bad escape", header: `OAuth oauth_nonce="%zz"`, wantOK: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok, err := ParseAuthorizationHeader(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
