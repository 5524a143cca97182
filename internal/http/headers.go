package http

import (
	"encoding/base64"
	"fmt"
)

// HeaderAuthorization is the canonical authorization header key. It is
// lower-case on purpose and emitted on the wire exactly as written here;
// HTTP compares header names case-insensitively.
const HeaderAuthorization = "authorization"

// BearerAuth generates an HTTP token authorization header value.
func BearerAuth(token string) string {
	return fmt.Sprintf("Bearer %s", token)
}

// BasicAuth generates an HTTP basic authorization header value using
// standard (non-URL-safe) base64 with padding.
func BasicAuth(user, password string) string {
	value := fmt.Sprintf("%s:%s", user, password)

	return fmt.Sprintf("Basic %s", base64.StdEncoding.EncodeToString([]byte(value)))
}
