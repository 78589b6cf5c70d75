package admingate

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/kovrae/admingate/guard"
	"github.com/kovrae/admingate/identity"
	"github.com/kovrae/admingate/internal/flows"
	"github.com/kovrae/admingate/jwt"
	"github.com/kovrae/admingate/permission"
	"github.com/kovrae/admingate/session"
)

// Engine is the session and authorization core of the admin console. It
// owns the durable session, the permission strategy, and the navigation
// guard, and orchestrates the Identity Service flows on top of them.
//
// All methods are safe for concurrent use. The engine never decides to
// navigate on its own: guard verdicts are returned to the caller, who
// performs the redirect.
type Engine struct {
	config   Config
	store    *session.Store
	client   *identity.Client
	strategy permission.Strategy
	routes   *guard.Table
	metrics  *Metrics
	log      *logrus.Logger
}

func (e *Engine) flowDeps() flows.Deps {
	return flows.Deps{
		ExchangeCredentials: e.client.Login,
		FetchProfile:        e.client.Me,
		RefreshTokens:       e.client.Refresh,
		NotifyLogout:        e.client.Logout,

		HasToken:     e.store.LoggedIn,
		RefreshToken: e.store.RefreshToken,
		StoreToken:   e.store.SetToken,
		StoreProfile: e.store.SetUser,
		ClearSession: e.store.Clear,

		IsAuthError: identity.IsAuthError,
		MetricInc:   func(id int) { e.metrics.Inc(MetricID(id)) },
		Warn:        e.log.Warnf,

		Metrics: flows.Metrics{
			LoginSuccess:      int(MetricLoginSuccess),
			LoginFailure:      int(MetricLoginFailure),
			Logout:            int(MetricLogout),
			RevalidateSuccess: int(MetricRevalidateSuccess),
			SelfHealLogout:    int(MetricSelfHealLogout),
			RefreshSuccess:    int(MetricRefreshSuccess),
			RefreshFailure:    int(MetricRefreshFailure),
		},
		Errors: flows.Errors{
			EngineNotReady:     ErrEngineNotReady,
			InvalidCredentials: ErrInvalidCredentials,
			Unauthorized:       ErrUnauthorized,
			Network:            ErrNetwork,
			NotLoggedIn:        ErrNotLoggedIn,
		},
	}
}

/*
====================================
SESSION FLOWS
====================================
*/

// Login exchanges credentials for a session. On success the token pair is
// stored first, then the profile; if the profile fetch fails the token is
// kept and the error reported, so a follow-up [Engine.FetchUserInfo] can
// complete the session. Rejected credentials surface as
// [ErrInvalidCredentials], transport failures as [ErrNetwork].
func (e *Engine) Login(ctx context.Context, username, password string) (*UserProfile, error) {
	return flows.RunLogin(ctx, username, password, e.flowDeps())
}

// Logout notifies the Identity Service (best effort) and clears the local
// session. It never fails and is safe to call logged out.
func (e *Engine) Logout(ctx context.Context) {
	flows.RunLogout(ctx, e.flowDeps())
}

// FetchUserInfo revalidates the cached profile against the Identity
// Service. Any failure — auth or transport — clears the whole session; a
// session that cannot be revalidated is not kept. Returns the fresh
// profile, or nil when logged out or cleared.
func (e *Engine) FetchUserInfo(ctx context.Context) *UserProfile {
	return flows.RunRevalidate(ctx, e.flowDeps())
}

// Refresh renews the token pair using the stored refresh token. Returns
// [ErrNotLoggedIn] when no refresh token is held. Renewal is always
// caller-triggered; the engine never refreshes in the background.
func (e *Engine) Refresh(ctx context.Context) error {
	return flows.RunRefresh(ctx, e.flowDeps())
}

// SetToken stores a token pair directly, bypassing the login flow. Used
// when tokens arrive out of band.
func (e *Engine) SetToken(ctx context.Context, tokens TokenResponse) {
	e.store.SetToken(ctx, tokens.AccessToken, tokens.RefreshToken)
}

// SetUserInfo stores a profile directly. Ignored while logged out: a
// profile never exists without a token.
func (e *Engine) SetUserInfo(ctx context.Context, p *UserProfile) {
	e.store.SetUser(ctx, p)
}

/*
====================================
PROJECTIONS
====================================
*/

// Snapshot returns a detached point-in-time copy of the session.
func (e *Engine) Snapshot() SessionSnapshot {
	return e.store.Snapshot()
}

// IsLoggedIn reports whether a non-empty access token is held. Token
// expiry does not change this; only revalidation or logout does.
func (e *Engine) IsLoggedIn() bool {
	return e.store.LoggedIn()
}

// IsAdmin reports whether the cached profile is an administrator.
func (e *Engine) IsAdmin() bool {
	p := e.store.User()
	return p != nil && p.IsAdmin()
}

// IsVip reports whether the cached profile has VIP standing. Admins
// count: every capability projection includes them.
func (e *Engine) IsVip() bool {
	p := e.store.User()
	if p == nil {
		return false
	}
	return p.UserType == UserTypeVIP || p.UserType == UserTypeAdmin
}

// UserType returns the cached profile's type, or the zero value when no
// profile is held.
func (e *Engine) UserType() UserType {
	p := e.store.User()
	if p == nil {
		return ""
	}
	return p.UserType
}

// Username returns the cached login name, or "".
func (e *Engine) Username() string {
	p := e.store.User()
	if p == nil {
		return ""
	}
	return p.Username
}

// Nickname returns the display name, falling back to the login name.
func (e *Engine) Nickname() string {
	p := e.store.User()
	if p == nil {
		return ""
	}
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.Username
}

// TokenInfo decodes the held access token's claims without verifying the
// signature. Advisory only — display and proactive-refresh hints, never
// an authorization input. Returns [ErrNotLoggedIn] when logged out.
func (e *Engine) TokenInfo() (*jwt.Claims, error) {
	tok := e.store.AccessToken()
	if tok == "" {
		return nil, ErrNotLoggedIn
	}
	return jwt.Introspect(tok)
}

/*
====================================
AUTHORIZATION
====================================
*/

// HasPermission reports whether the current session may perform action.
// Logged out or profile-less sessions hold no permissions; admins hold
// all of them; otherwise the configured strategy decides. Unknown actions
// are denied.
func (e *Engine) HasPermission(action string) bool {
	return permission.Allowed(e.strategy, e.store.User(), action)
}

// Authorize evaluates a navigation attempt against the route table and
// the current session. The verdict says what should happen; acting on it
// is the caller's job.
func (e *Engine) Authorize(path string) guard.Outcome {
	out := e.routes.Evaluate(path, e.store.Snapshot())
	e.observeGuard(path, out)
	return out
}

func (e *Engine) observeGuard(path string, out guard.Outcome) {
	switch out.Kind {
	case guard.Allow:
		e.metrics.Inc(MetricGuardAllow)
	case guard.RedirectLogin:
		e.metrics.Inc(MetricGuardRedirectLogin)
	case guard.RedirectHome:
		e.metrics.Inc(MetricGuardRedirectHome)
	case guard.RedirectFallback:
		e.metrics.Inc(MetricGuardRedirectFallback)
	}
	if out.Kind != guard.Allow {
		e.log.WithFields(logrus.Fields{
			"path":    path,
			"outcome": out.Kind.String(),
			"target":  out.Target,
		}).Debug("navigation redirected")
	}
}

// Routes exposes the immutable route table, for adapters such as
// [guard.Middleware].
func (e *Engine) Routes() *guard.Table {
	return e.routes
}

// GuardMiddleware returns a net/http middleware enforcing the route table
// against the live session, with verdicts recorded in the engine's
// metrics and debug log.
func (e *Engine) GuardMiddleware() func(http.Handler) http.Handler {
	return guard.Middleware(e.routes, e.store.Snapshot, func(path string, out guard.Outcome) {
		e.observeGuard(path, out)
	})
}

// MetricsSnapshot copies the current counter values.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}
