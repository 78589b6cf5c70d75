package permission

import "github.com/kovrae/admingate/session"

// Strategy decides whether a non-admin profile may perform an action.
// Implementations must be pure, synchronous, and safe for concurrent use.
type Strategy interface {
	Allows(p *session.Profile, action string) bool
}

// Allowed is the single entry point for permission checks. It applies the
// contract shared by every strategy: no profile denies everything, the
// admin user type passes everything (including unrecognized actions), and
// only then does the configured strategy run.
func Allowed(s Strategy, p *session.Profile, action string) bool {
	if p == nil {
		return false
	}
	if p.UserType == session.TypeAdmin {
		return true
	}
	if s == nil {
		return false
	}
	return s.Allows(p, action)
}
