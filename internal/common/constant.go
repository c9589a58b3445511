// Package common contains shared constants, sentinel errors and small helpers
// used across EatsBalance components.
package common

const (
	// AppName prefixes environment variables and names the default data dir.
	AppName = "eatsbalance"

	// DefaultAuthHeader is the HTTP header that carries the session token.
	DefaultAuthHeader = "Authorization"

	// DefaultAuthScheme precedes the token inside DefaultAuthHeader.
	DefaultAuthScheme = "Bearer"
)
