// Package auth holds the API token check shared by the gRPC and HTTP transports.
package auth

import (
	"crypto/subtle"
	"strings"
)

// Enabled reports whether requests must carry the API token
// An empty token turns authentication off on every transport
func Enabled(validToken string) bool {
	return validToken != ""
}

// TokenMatches reports whether an authorization header value carries the API token
// Both the bare token and "Bearer <token>" are accepted
func TokenMatches(header, validToken string) bool {
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return subtle.ConstantTimeCompare([]byte(token), []byte(validToken)) == 1
}
