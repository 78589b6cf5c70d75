package admingate

import "errors"

var (
	// ErrInvalidCredentials is returned by Login when the Identity Service
	// rejects the username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when the held access credential is expired
	// or invalid. Recoverable by re-authenticating.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNetwork is returned when the Identity Service is unreachable or
	// fails at the transport level. Never retried internally.
	ErrNetwork = errors.New("identity service unreachable")
	// ErrNotLoggedIn is returned by operations that need a held credential,
	// such as Refresh without a refresh token.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrEngineNotReady is returned when an Engine is used before Build
	// completed its wiring.
	ErrEngineNotReady = errors.New("engine not initialized")
)
