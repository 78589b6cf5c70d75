// Package jwt decodes access-token claims without verifying them.
//
// The session core treats tokens as opaque — the Identity Service signs and
// validates them. Introspection only exists so callers can read advisory
// metadata (expiry, subject) to drive their own renewal policy. Nothing in
// this package proves a token is genuine, and no authorization decision may
// rest on its output.
package jwt
