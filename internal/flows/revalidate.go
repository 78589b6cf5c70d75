package flows

import (
	"context"

	"github.com/kovrae/admingate/session"
)

// RunRevalidate executes the background profile refresh with the self-heal
// contract: no credential means no network effect, and any fetch failure
// silently degrades to "logged out" by clearing the whole session. The
// caller never receives an error, only an absent profile.
func RunRevalidate(ctx context.Context, deps Deps) *session.Profile {
	deps.fillDefaults()
	if deps.HasToken == nil || deps.FetchProfile == nil ||
		deps.StoreProfile == nil || deps.ClearSession == nil {
		return nil
	}

	if !deps.HasToken() {
		return nil
	}

	profile, err := deps.FetchProfile(ctx)
	if err != nil {
		deps.Warn("revalidate: profile fetch failed, clearing session: %v", err)
		deps.ClearSession(ctx)
		deps.MetricInc(deps.Metrics.SelfHealLogout)
		return nil
	}

	deps.StoreProfile(ctx, profile)
	deps.MetricInc(deps.Metrics.RevalidateSuccess)
	return profile
}
