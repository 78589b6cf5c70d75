package flows

import "context"

// RunLogout clears the session. The server-side invalidation notification
// is best-effort and only attempted while a credential is still held; its
// failure never blocks the local clear. Calling RunLogout on an empty
// session is a no-op apart from the idempotent clear.
func RunLogout(ctx context.Context, deps Deps) {
	deps.fillDefaults()
	if deps.ClearSession == nil {
		return
	}

	if deps.HasToken != nil && deps.HasToken() && deps.NotifyLogout != nil {
		if err := deps.NotifyLogout(ctx); err != nil {
			deps.Warn("logout: server notification failed: %v", err)
		}
	}

	deps.ClearSession(ctx)
	deps.MetricInc(deps.Metrics.Logout)
}
