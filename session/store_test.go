package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kovrae/admingate/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	backend := storage.NewMemory()
	return NewStore(backend, DefaultKeys(), Hooks{}), backend
}

func adminProfile() *Profile {
	return &Profile{
		ID:       1,
		Username: "root",
		Nickname: "Root",
		UserType: TypeAdmin,
		IsActive: true,
	}
}

func TestSetTokenMarksLoggedIn(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if s.LoggedIn() {
		t.Fatal("fresh store must be logged out")
	}
	s.SetToken(ctx, "access-1", "refresh-1")
	if !s.LoggedIn() {
		t.Fatal("expected logged in after SetToken")
	}
	if s.AccessToken() != "access-1" || s.RefreshToken() != "refresh-1" {
		t.Fatal("token pair not stored")
	}
}

func TestSetTokenPersistsBothKeys(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()

	s.SetToken(ctx, "access-1", "refresh-1")

	if got, _ := backend.Get(ctx, "admin_token"); got != "access-1" {
		t.Fatalf("access token not persisted, got %q", got)
	}
	if got, _ := backend.Get(ctx, "admin_refresh_token"); got != "refresh-1" {
		t.Fatalf("refresh token not persisted, got %q", got)
	}
}

func TestSetUserRequiresToken(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()

	s.SetUser(ctx, adminProfile())
	if s.User() != nil {
		t.Fatal("profile must not attach to a logged-out session")
	}
	if _, err := backend.Get(ctx, "admin_user"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("profile must not be persisted while logged out")
	}

	s.SetToken(ctx, "access-1", "")
	s.SetUser(ctx, adminProfile())
	if got := s.User(); got == nil || got.Username != "root" {
		t.Fatal("profile not stored after login")
	}
}

func TestUserReturnsDetachedCopy(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.SetToken(ctx, "access-1", "")
	p := adminProfile()
	s.SetUser(ctx, p)

	p.Username = "mutated-input"
	got := s.User()
	if got.Username != "root" {
		t.Fatal("store must deep-copy the profile on write")
	}
	got.Username = "mutated-output"
	if s.User().Username != "root" {
		t.Fatal("store must deep-copy the profile on read")
	}
}

func TestClearWipesEverything(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()

	s.SetToken(ctx, "access-1", "refresh-1")
	s.SetUser(ctx, adminProfile())
	s.Clear(ctx)

	if s.LoggedIn() || s.RefreshToken() != "" || s.User() != nil {
		t.Fatal("Clear must wipe tokens and profile together")
	}
	for _, key := range []string{"admin_token", "admin_refresh_token", "admin_user"} {
		if _, err := backend.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("key %s still persisted after Clear", key)
		}
	}

	// Clearing an empty session is a no-op, not an error.
	s.Clear(ctx)
}

func TestHydrateRestoresSession(t *testing.T) {
	backend := storage.NewMemory()
	ctx := context.Background()

	first := NewStore(backend, DefaultKeys(), Hooks{})
	first.SetToken(ctx, "access-1", "refresh-1")
	first.SetUser(ctx, adminProfile())

	second := NewStore(backend, DefaultKeys(), Hooks{})
	second.Hydrate(ctx)

	if !second.LoggedIn() {
		t.Fatal("expected hydrated session to be logged in")
	}
	got := second.User()
	if got == nil || got.Username != "root" || got.UserType != TypeAdmin {
		t.Fatalf("hydrated profile mismatch: %+v", got)
	}
}

func TestHydrateDropsProfileWithoutToken(t *testing.T) {
	backend := storage.NewMemory()
	ctx := context.Background()

	encoded, err := EncodeProfile(adminProfile())
	if err != nil {
		t.Fatalf("EncodeProfile failed: %v", err)
	}
	if err := backend.Set(ctx, "admin_user", encoded); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	s := NewStore(backend, DefaultKeys(), Hooks{})
	s.Hydrate(ctx)

	if s.LoggedIn() {
		t.Fatal("no token stored, must hydrate logged out")
	}
	if s.User() != nil {
		t.Fatal("orphan profile must be discarded on hydrate")
	}
}

func TestHydrateSurvivesCorruptProfile(t *testing.T) {
	backend := storage.NewMemory()
	ctx := context.Background()

	if err := backend.Set(ctx, "admin_token", "access-1"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := backend.Set(ctx, "admin_user", "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	warned := false
	s := NewStore(backend, DefaultKeys(), Hooks{
		Warn: func(string, ...any) { warned = true },
	})
	s.Hydrate(ctx)

	if !s.LoggedIn() {
		t.Fatal("corrupt profile must not drop the token")
	}
	if s.User() != nil {
		t.Fatal("corrupt profile must decode to absent")
	}
	if !warned {
		t.Fatal("expected a warning for the corrupt profile")
	}
}

// failingBackend rejects every write and delete.
type failingBackend struct{}

func (failingBackend) Get(context.Context, string) (string, error) {
	return "", storage.ErrNotFound
}
func (failingBackend) Set(context.Context, string, string) error {
	return fmt.Errorf("%w: disk full", storage.ErrUnavailable)
}
func (failingBackend) Delete(context.Context, string) error {
	return fmt.Errorf("%w: disk full", storage.ErrUnavailable)
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	failures := 0
	s := NewStore(failingBackend{}, DefaultKeys(), Hooks{
		StorageFailure: func(string, error) { failures++ },
	})
	ctx := context.Background()

	s.SetToken(ctx, "access-1", "refresh-1")
	s.SetUser(ctx, adminProfile())
	s.Clear(ctx)

	// In-memory state still behaved normally throughout.
	if s.LoggedIn() || s.User() != nil {
		t.Fatal("Clear must succeed in memory despite backend failures")
	}
	// 2 token writes + 1 profile write + 3 deletes.
	if failures != 6 {
		t.Fatalf("expected 6 storage failure events, got %d", failures)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.SetToken(ctx, "access-1", "refresh-1")
	s.SetUser(ctx, adminProfile())

	snap := s.Snapshot()
	s.Clear(ctx)

	if !snap.LoggedIn() || snap.User == nil {
		t.Fatal("snapshot must not observe later mutations")
	}
	if snap.UserType() != TypeAdmin {
		t.Fatalf("expected admin snapshot, got %q", snap.UserType())
	}
}
