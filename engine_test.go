package admingate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/kovrae/admingate/guard"
	"github.com/kovrae/admingate/session"
	"github.com/kovrae/admingate/storage"
)

// identityStub is a minimal Identity Service: one admin and one regular
// user, token = "tok-" + username. failMe forces /auth/me to reject.
type identityStub struct {
	srv    *httptest.Server
	failMe atomic.Bool
	meHits atomic.Int64
}

func newIdentityStub(t *testing.T) *identityStub {
	t.Helper()
	stub := &identityStub{}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "pw" || (creds.Username != "root" && creds.Username != "viewer") {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "incorrect username or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "tok-" + creds.Username,
			"refresh_token": "ref-" + creds.Username,
			"token_type":    "bearer",
			"expires_in":    3600,
		})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		stub.meHits.Add(1)
		auth := r.Header.Get("Authorization")
		if stub.failMe.Load() || (auth != "Bearer tok-root" && auth != "Bearer tok-viewer") {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "not authenticated"})
			return
		}
		username := auth[len("Bearer tok-"):]
		p := session.Profile{ID: 2, Username: username, UserType: session.TypeUser, IsActive: true}
		if username == "root" {
			p.ID = 1
			p.UserType = session.TypeAdmin
		}
		_ = json.NewEncoder(w).Encode(p)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.RefreshToken != "ref-root" && body.RefreshToken != "ref-viewer" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "invalid refresh token"})
			return
		}
		username := body.RefreshToken[len("ref-"):]
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "tok2-" + username,
			"refresh_token": "ref2-" + username,
		})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	stub.srv = httptest.NewServer(mux)
	t.Cleanup(stub.srv.Close)
	return stub
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestEngine(t *testing.T, stub *identityStub, backend storage.Backend) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Identity.BaseURL = stub.srv.URL

	engine, err := New().
		WithConfig(cfg).
		WithStorage(backend).
		WithLogger(quietLogger()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return engine
}

func TestLoginLogoutLifecycle(t *testing.T) {
	stub := newIdentityStub(t)
	backend := storage.NewMemory()
	engine := newTestEngine(t, stub, backend)
	ctx := context.Background()

	if engine.IsLoggedIn() {
		t.Fatal("fresh engine must be logged out")
	}

	p, err := engine.Login(ctx, "root", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if p.Username != "root" || !p.IsAdmin() {
		t.Fatalf("profile mismatch: %+v", p)
	}
	if !engine.IsLoggedIn() || !engine.IsAdmin() || !engine.IsVip() {
		t.Fatal("admin projections wrong after login")
	}
	if engine.Username() != "root" || engine.Nickname() != "root" {
		t.Fatal("name projections wrong (nickname must fall back to username)")
	}

	engine.Logout(ctx)
	if engine.IsLoggedIn() || engine.IsAdmin() || engine.Username() != "" {
		t.Fatal("logout must wipe every projection")
	}
	for _, key := range []string{"admin_token", "admin_refresh_token", "admin_user"} {
		if _, err := backend.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("key %s survived logout", key)
		}
	}

	// Logged-out logout is a no-op.
	engine.Logout(ctx)
}

func TestLoginRejection(t *testing.T) {
	stub := newIdentityStub(t)
	engine := newTestEngine(t, stub, storage.NewMemory())

	_, err := engine.Login(context.Background(), "root", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if engine.IsLoggedIn() {
		t.Fatal("rejected login must leave the session logged out")
	}
	if got := engine.MetricsSnapshot().Counters[MetricLoginFailure]; got != 1 {
		t.Fatalf("expected 1 login failure, got %d", got)
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	stub := newIdentityStub(t)
	backend := storage.NewMemory()

	first := newTestEngine(t, stub, backend)
	if _, err := first.Login(context.Background(), "root", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	meHitsBefore := stub.meHits.Load()
	second := newTestEngine(t, stub, backend)

	if !second.IsLoggedIn() || !second.IsAdmin() {
		t.Fatal("rebuilt engine must hydrate the persisted session")
	}
	if stub.meHits.Load() != meHitsBefore {
		t.Fatal("hydration must not hit the network")
	}
}

func TestFetchUserInfoSelfHeals(t *testing.T) {
	stub := newIdentityStub(t)
	backend := storage.NewMemory()
	engine := newTestEngine(t, stub, backend)
	ctx := context.Background()

	if _, err := engine.Login(ctx, "root", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	stub.failMe.Store(true)
	if p := engine.FetchUserInfo(ctx); p != nil {
		t.Fatal("failed revalidation must return nil")
	}
	if engine.IsLoggedIn() {
		t.Fatal("failed revalidation must clear the session")
	}
	if _, err := backend.Get(ctx, "admin_token"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("self-heal must also wipe persisted state")
	}
	if got := engine.MetricsSnapshot().Counters[MetricSelfHealLogout]; got != 1 {
		t.Fatalf("expected 1 self-heal, got %d", got)
	}
}

func TestFetchUserInfoLoggedOutNoNetwork(t *testing.T) {
	stub := newIdentityStub(t)
	engine := newTestEngine(t, stub, storage.NewMemory())

	if p := engine.FetchUserInfo(context.Background()); p != nil {
		t.Fatal("logged-out revalidate must return nil")
	}
	if stub.meHits.Load() != 0 {
		t.Fatal("logged-out revalidate must not hit the network")
	}
}

func TestRefreshRotatesPair(t *testing.T) {
	stub := newIdentityStub(t)
	engine := newTestEngine(t, stub, storage.NewMemory())
	ctx := context.Background()

	if err := engine.Refresh(ctx); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}

	if _, err := engine.Login(ctx, "viewer", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := engine.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if got := engine.Snapshot().AccessToken; got != "tok2-viewer" {
		t.Fatalf("access token not rotated, got %q", got)
	}
}

func TestHasPermissionProjections(t *testing.T) {
	stub := newIdentityStub(t)
	engine := newTestEngine(t, stub, storage.NewMemory())
	ctx := context.Background()

	if engine.HasPermission("share:view") {
		t.Fatal("logged-out session holds no permissions")
	}

	if _, err := engine.Login(ctx, "viewer", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !engine.HasPermission("share:view") {
		t.Fatal("base user must hold share:view")
	}
	if engine.HasPermission("share:batch_create") {
		t.Fatal("base user must not hold the VIP-only action")
	}
	if engine.IsVip() || engine.IsAdmin() {
		t.Fatal("viewer is neither VIP nor admin")
	}
	if engine.UserType() != UserTypeUser {
		t.Fatalf("expected user type, got %q", engine.UserType())
	}
}

func TestAuthorizeRecordsMetrics(t *testing.T) {
	stub := newIdentityStub(t)
	engine := newTestEngine(t, stub, storage.NewMemory())
	ctx := context.Background()

	if out := engine.Authorize("/dashboard"); out.Kind != guard.RedirectLogin {
		t.Fatalf("expected login redirect, got %s", out.Kind)
	}

	if _, err := engine.Login(ctx, "viewer", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if out := engine.Authorize("/dashboard"); out.Kind != guard.RedirectFallback || out.Target != "/shares" {
		t.Fatalf("expected fallback redirect to /shares, got %+v", out)
	}
	if out := engine.Authorize("/shares"); out.Kind != guard.Allow {
		t.Fatalf("expected allow, got %s", out.Kind)
	}

	counters := engine.MetricsSnapshot().Counters
	if counters[MetricGuardRedirectLogin] != 1 || counters[MetricGuardRedirectFallback] != 1 || counters[MetricGuardAllow] != 1 {
		t.Fatalf("guard counters wrong: %v", counters)
	}
}

func TestSetTokenAndSetUserInfo(t *testing.T) {
	stub := newIdentityStub(t)
	engine := newTestEngine(t, stub, storage.NewMemory())
	ctx := context.Background()

	// Profile without token is dropped.
	engine.SetUserInfo(ctx, &UserProfile{ID: 9, Username: "ghost"})
	if engine.Username() != "" {
		t.Fatal("profile must not attach while logged out")
	}

	engine.SetToken(ctx, TokenResponse{AccessToken: "tok-out-of-band", RefreshToken: "ref"})
	engine.SetUserInfo(ctx, &UserProfile{ID: 9, Username: "ghost", UserType: UserTypeVIP})

	if !engine.IsLoggedIn() || engine.Username() != "ghost" || !engine.IsVip() {
		t.Fatal("out-of-band session not established")
	}
}

func TestTokenInfoIntrospection(t *testing.T) {
	stub := newIdentityStub(t)
	engine := newTestEngine(t, stub, storage.NewMemory())
	ctx := context.Background()

	if _, err := engine.TokenInfo(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}

	// The stub mints opaque tokens; introspection reports that honestly.
	if _, err := engine.Login(ctx, "root", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := engine.TokenInfo(); err == nil {
		t.Fatal("opaque token must not introspect")
	}
}

func TestBuilderValidation(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("expected missing storage to fail")
	}

	cfg := DefaultConfig()
	if _, err := New().WithConfig(cfg).WithStorage(storage.NewMemory()).Build(); err == nil {
		t.Fatal("expected missing identity base URL to fail")
	}

	stub := newIdentityStub(t)
	cfg.Identity.BaseURL = stub.srv.URL
	b := New().WithConfig(cfg).WithStorage(storage.NewMemory()).WithLogger(quietLogger())
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build on the same builder to fail")
	}
}
