package guard

import (
	"fmt"

	"github.com/kovrae/admingate/session"
)

// OutcomeKind enumerates the terminal guard decisions.
type OutcomeKind int

const (
	// Allow lets the navigation proceed unchanged.
	Allow OutcomeKind = iota
	// RedirectLogin rewrites the navigation to the login destination,
	// carrying the original path as the return path.
	RedirectLogin
	// RedirectHome sends an already-authenticated admin away from the login
	// page to the admin home.
	RedirectHome
	// RedirectFallback sends a non-admin to the default landing destination.
	RedirectFallback
)

// String returns the outcome kind name for logs and metrics labels.
func (k OutcomeKind) String() string {
	switch k {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case RedirectFallback:
		return "redirect_fallback"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is a terminal guard decision. Target is the rewritten path for
// redirect kinds ("" for Allow); ReturnPath carries the originally intended
// destination on RedirectLogin so login can forward there afterward.
type Outcome struct {
	Kind       OutcomeKind
	Target     string
	ReturnPath string
}

// Evaluate authorizes a navigation intent to path under the given session
// snapshot. Rules are evaluated in order, first match wins:
//
//  1. auth-requiring destination, logged out → RedirectLogin(path)
//  2. login destination while logged in → RedirectHome for admins,
//     RedirectFallback for everyone else
//  3. admin-only destination, logged in as non-admin → RedirectFallback
//  4. otherwise → Allow
//
// Evaluate is pure: it never mutates the snapshot or the table.
func (t *Table) Evaluate(path string, snap session.Snapshot) Outcome {
	dest := t.Destination(path)

	if dest.RequiresAuth && !snap.LoggedIn() {
		return Outcome{Kind: RedirectLogin, Target: t.login, ReturnPath: path}
	}

	if path == t.login && snap.LoggedIn() {
		if snap.UserType() == session.TypeAdmin {
			return Outcome{Kind: RedirectHome, Target: t.adminHome}
		}
		return Outcome{Kind: RedirectFallback, Target: t.fallback}
	}

	if snap.LoggedIn() && snap.UserType() != session.TypeAdmin && dest.AdminOnly {
		return Outcome{Kind: RedirectFallback, Target: t.fallback}
	}

	return Outcome{Kind: Allow}
}
