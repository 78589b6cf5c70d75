package flows

import (
	"context"
	"fmt"

	"github.com/kovrae/admingate/identity"
	"github.com/kovrae/admingate/session"
)

// Metrics carries the metric IDs the flows increment.
type Metrics struct {
	LoginSuccess      int
	LoginFailure      int
	Logout            int
	RevalidateSuccess int
	SelfHealLogout    int
	RefreshSuccess    int
	RefreshFailure    int
}

// Errors carries the host-level sentinel errors the flows classify into.
type Errors struct {
	EngineNotReady     error
	InvalidCredentials error
	Unauthorized       error
	Network            error
	NotLoggedIn        error
}

// Deps captures every collaborator the session flows touch. Identity calls
// and store mutations are closures so flows can be exercised against fakes
// without an engine.
type Deps struct {
	ExchangeCredentials func(ctx context.Context, username, password string) (*identity.TokenResponse, error)
	FetchProfile        func(ctx context.Context) (*session.Profile, error)
	RefreshTokens       func(ctx context.Context, refreshToken string) (*identity.TokenResponse, error)
	NotifyLogout        func(ctx context.Context) error

	HasToken     func() bool
	RefreshToken func() string
	StoreToken   func(ctx context.Context, access, refresh string)
	StoreProfile func(ctx context.Context, p *session.Profile)
	ClearSession func(ctx context.Context)

	IsAuthError func(error) bool
	MetricInc   func(int)
	Warn        func(format string, args ...any)

	Metrics Metrics
	Errors  Errors
}

func (d *Deps) fillDefaults() {
	if d.MetricInc == nil {
		d.MetricInc = func(int) {}
	}
	if d.Warn == nil {
		d.Warn = func(string, ...any) {}
	}
	if d.IsAuthError == nil {
		d.IsAuthError = identity.IsAuthError
	}
}

// classify maps a collaborator failure onto the host's taxonomy:
// authentication rejections keep their sentinel, everything else is a
// transport failure.
func (d *Deps) classify(err error, authSentinel error) error {
	if d.IsAuthError(err) {
		return fmt.Errorf("%w: %v", authSentinel, err)
	}
	return fmt.Errorf("%w: %v", d.Errors.Network, err)
}
