package session

import (
	"context"
	"errors"
	"sync"

	"github.com/kovrae/admingate/storage"
)

// Keys names the three durable-storage entries a session occupies.
type Keys struct {
	AccessToken  string
	RefreshToken string
	User         string
}

// DefaultKeys returns the storage key names of the admin console.
func DefaultKeys() Keys {
	return Keys{
		AccessToken:  "admin_token",
		RefreshToken: "admin_refresh_token",
		User:         "admin_user",
	}
}

// Hooks are optional observers for degraded persistence. Both may be nil.
type Hooks struct {
	// Warn receives printf-style diagnostics.
	Warn func(format string, args ...any)
	// StorageFailure fires once per failed backend write/delete, after the
	// in-memory mutation already succeeded.
	StorageFailure func(op string, err error)
}

// Store is the mutex-guarded session state with write-through, best-effort
// persistence to a [storage.Backend].
type Store struct {
	mu      sync.RWMutex
	access  string
	refresh string
	user    *Profile

	backend storage.Backend
	keys    Keys
	hooks   Hooks
}

// NewStore creates a session store over the given backend. The store starts
// empty; call [Store.Hydrate] to recover persisted state.
func NewStore(backend storage.Backend, keys Keys, hooks Hooks) *Store {
	if keys == (Keys{}) {
		keys = DefaultKeys()
	}
	if hooks.Warn == nil {
		hooks.Warn = func(string, ...any) {}
	}
	if hooks.StorageFailure == nil {
		hooks.StorageFailure = func(string, error) {}
	}
	return &Store{backend: backend, keys: keys, hooks: hooks}
}

// Hydrate loads the persisted session, if any. It performs no network I/O
// and never fails: unreadable or corrupt entries degrade to an empty field.
// A stored profile without a stored access token is discarded, restoring the
// logged-in invariant.
func (s *Store) Hydrate(ctx context.Context) {
	access := s.readKey(ctx, s.keys.AccessToken)
	refresh := s.readKey(ctx, s.keys.RefreshToken)

	var user *Profile
	if raw := s.readKey(ctx, s.keys.User); raw != "" {
		decoded, err := DecodeProfile(raw)
		if err != nil {
			s.hooks.Warn("session: dropping corrupt stored profile: %v", err)
		} else {
			user = decoded
		}
	}
	if access == "" {
		user = nil
	}

	s.mu.Lock()
	s.access = access
	s.refresh = refresh
	s.user = user
	s.mu.Unlock()
}

func (s *Store) readKey(ctx context.Context, key string) string {
	val, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.hooks.Warn("session: read %q failed: %v", key, err)
			s.hooks.StorageFailure("get", err)
		}
		return ""
	}
	return val
}

// SetToken stores the access and refresh credentials, overwriting any prior
// pair, and persists both. Token contents are opaque and not validated.
func (s *Store) SetToken(ctx context.Context, access, refresh string) {
	s.mu.Lock()
	s.access = access
	s.refresh = refresh
	s.mu.Unlock()

	s.persist(ctx, s.keys.AccessToken, access)
	s.persist(ctx, s.keys.RefreshToken, refresh)
}

// SetUser replaces the cached profile with a deep copy of p and persists the
// serialized snapshot. A profile is never attached to a logged-out session;
// such a call is dropped with a warning.
func (s *Store) SetUser(ctx context.Context, p *Profile) {
	s.mu.Lock()
	if s.access == "" {
		s.mu.Unlock()
		s.hooks.Warn("session: ignoring profile for logged-out session")
		return
	}
	s.user = p.Clone()
	s.mu.Unlock()

	encoded, err := EncodeProfile(p)
	if err != nil {
		s.hooks.Warn("session: profile not persisted: %v", err)
		s.hooks.StorageFailure("set", err)
		return
	}
	s.persist(ctx, s.keys.User, encoded)
}

// Clear wipes credentials and profile together and removes the persisted
// entries. Safe to call on an already-empty store.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	s.user = nil
	s.mu.Unlock()

	s.remove(ctx, s.keys.AccessToken)
	s.remove(ctx, s.keys.RefreshToken)
	s.remove(ctx, s.keys.User)
}

func (s *Store) persist(ctx context.Context, key, value string) {
	if err := s.backend.Set(ctx, key, value); err != nil {
		s.hooks.Warn("session: write %q failed: %v", key, err)
		s.hooks.StorageFailure("set", err)
	}
}

func (s *Store) remove(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		s.hooks.Warn("session: delete %q failed: %v", key, err)
		s.hooks.StorageFailure("delete", err)
	}
}

// Snapshot returns a detached copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		AccessToken:  s.access,
		RefreshToken: s.refresh,
		User:         s.user.Clone(),
	}
}

// AccessToken returns the current access credential ("" when logged out).
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken returns the current refresh credential.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// User returns a copy of the cached profile, or nil while absent.
func (s *Store) User() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// LoggedIn reports whether an access credential is held.
func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access != ""
}
