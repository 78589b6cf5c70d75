// Package identity is the HTTP client for the external Identity Service,
// the single collaborator the session core consumes.
//
// The client is transport only: it exchanges credentials, fetches the
// profile, refreshes and invalidates tokens, and classifies failures as
// authentication rejections ([IsAuthError]) or transport errors. Session
// state, retries, and renewal policy all live with the caller.
package identity
