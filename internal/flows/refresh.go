package flows

import "context"

// RunRefresh mints a new token pair from the stored refresh credential and
// overwrites the session's tokens. It only ever runs on explicit caller
// request; nothing in the core schedules it.
func RunRefresh(ctx context.Context, deps Deps) error {
	deps.fillDefaults()
	if deps.RefreshTokens == nil || deps.RefreshToken == nil || deps.StoreToken == nil {
		return deps.Errors.EngineNotReady
	}

	refreshToken := deps.RefreshToken()
	if refreshToken == "" {
		return deps.Errors.NotLoggedIn
	}

	tokens, err := deps.RefreshTokens(ctx, refreshToken)
	if err != nil {
		deps.MetricInc(deps.Metrics.RefreshFailure)
		return deps.classify(err, deps.Errors.Unauthorized)
	}

	deps.StoreToken(ctx, tokens.AccessToken, tokens.RefreshToken)
	deps.MetricInc(deps.Metrics.RefreshSuccess)
	return nil
}
