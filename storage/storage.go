package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by [Backend.Get] when the key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// ErrUnavailable wraps backend I/O failures (unreadable file, Redis down).
// Callers treat it as a degraded-persistence signal, never as fatal.
var ErrUnavailable = errors.New("storage: backend unavailable")

// Backend is the durable key-value store used for session persistence.
//
// Implementations must be safe for concurrent use. Get returns
// [ErrNotFound] for absent keys; Set overwrites unconditionally; Delete is
// idempotent and succeeds when the key is already absent.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
