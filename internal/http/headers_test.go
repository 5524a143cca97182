package http_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	apihttp "github.com/WavyLabs/rspotify/internal/http"
)

func TestBearerAuth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Bearer abc", apihttp.BearerAuth("abc"))
	assert.Equal(t, "Bearer ", apihttp.BearerAuth(""))
}

func TestBasicAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		user     string
		password string
		expected string
	}{
		{
			name:     "regular credentials",
			user:     "user",
			password: "pass",
			expected: "Basic dXNlcjpwYXNz",
		},
		{
			name:     "empty credentials",
			user:     "",
			password: "",
			expected: "Basic " + base64.StdEncoding.EncodeToString([]byte(":")),
		},
		{
			name:     "empty password keeps the separator",
			user:     "client-id",
			password: "",
			expected: "Basic " + base64.StdEncoding.EncodeToString([]byte("client-id:")),
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, apihttp.BasicAuth(testCase.user, testCase.password))
		})
	}
}

func TestBasicAuthKeepsPadding(t *testing.T) {
	t.Parallel()

	// "a:b" encodes to "YTpi" without padding; "ab:c" encodes with one
	// padding byte which must not be stripped.
	assert.Equal(t, "Basic YWI6Yw==", apihttp.BasicAuth("ab", "c"))
}

func TestHeaderAuthorizationIsLowerCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "authorization", apihttp.HeaderAuthorization)
}
