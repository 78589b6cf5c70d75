package guard

import (
	"net/http"
	"net/url"

	"github.com/kovrae/admingate/session"
)

// ReturnParam is the query parameter carrying the originally intended
// destination on a login redirect.
const ReturnParam = "redirect"

// SnapshotFunc supplies the current session snapshot. It is invoked on
// every request so the middleware always sees fresh state.
type SnapshotFunc func() session.Snapshot

// Middleware adapts the guard to net/http for server-rendered consoles:
// every request is a navigation intent, redirect outcomes become 302s, and
// Allow falls through to the next handler.
//
// The optional observe hook receives each decision (for metrics/logging)
// and must not block.
func Middleware(table *Table, snapshot SnapshotFunc, observe func(path string, o Outcome)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			outcome := table.Evaluate(r.URL.Path, snapshot())
			if observe != nil {
				observe(r.URL.Path, outcome)
			}

			switch outcome.Kind {
			case Allow:
				next.ServeHTTP(w, r)
			case RedirectLogin:
				target := outcome.Target + "?" + ReturnParam + "=" + url.QueryEscape(outcome.ReturnPath)
				http.Redirect(w, r, target, http.StatusFound)
			default:
				http.Redirect(w, r, outcome.Target, http.StatusFound)
			}
		})
	}
}
