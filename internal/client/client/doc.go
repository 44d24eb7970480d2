// Package client talks to the items server over HTTP.
//
// # Overview
//
// Client is the transport-agnostic contract used by the CLI. HTTPClient
// implements it: Login exchanges credentials for a bearer token which is kept
// in memory and attached to every later call until Logout.
//
// # Error Handling
//
// Responses are mapped to sentinel errors that callers match with errors.Is:
// ErrUnauthorized (401), ErrNotFound (404), ErrBadRequest (400) and
// ErrUnavailable (transport failures and 5xx). The server's problem detail,
// when present, is appended to the error message.
//
// HTTPClient is safe for concurrent use.
package client
