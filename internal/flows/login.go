package flows

import (
	"context"

	"github.com/kovrae/admingate/session"
)

// RunLogin executes the interactive login flow: exchange credentials, store
// the token pair, then fetch and store the profile.
//
// Ordering is part of the contract: the token set is externally observable
// before the profile fetch is issued, and the profile set completes before
// the profile is returned.
//
// When the exchange succeeds but the profile fetch fails, the caller stays
// logged in with a token and an absent profile; the error is surfaced so
// the caller can retry revalidation or log out.
func RunLogin(ctx context.Context, username, password string, deps Deps) (*session.Profile, error) {
	deps.fillDefaults()
	if deps.ExchangeCredentials == nil || deps.FetchProfile == nil ||
		deps.StoreToken == nil || deps.StoreProfile == nil {
		return nil, deps.Errors.EngineNotReady
	}

	tokens, err := deps.ExchangeCredentials(ctx, username, password)
	if err != nil {
		deps.MetricInc(deps.Metrics.LoginFailure)
		return nil, deps.classify(err, deps.Errors.InvalidCredentials)
	}

	deps.StoreToken(ctx, tokens.AccessToken, tokens.RefreshToken)

	profile, err := deps.FetchProfile(ctx)
	if err != nil {
		// Token already held; the session is usable once revalidation lands.
		deps.Warn("login: profile fetch failed after token exchange: %v", err)
		return nil, deps.classify(err, deps.Errors.Unauthorized)
	}

	deps.StoreProfile(ctx, profile)
	deps.MetricInc(deps.Metrics.LoginSuccess)
	return profile, nil
}
