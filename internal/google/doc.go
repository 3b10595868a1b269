// Package google builds authenticated HTTP clients for the Drive, Docs and
// Sheets APIs.
//
// Credentials are a user's OAuth client plus a long-lived refresh token. The
// refresh token is exchanged for access tokens on demand; the auth command
// obtains one through a loopback browser flow.
package google
