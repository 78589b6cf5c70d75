package admingate

import (
	"github.com/kovrae/admingate/identity"
	"github.com/kovrae/admingate/session"
)

// UserType is the primary authorization discriminant.
type UserType = session.UserType

const (
	// UserTypeAdmin bypasses all permission checks.
	UserTypeAdmin = session.TypeAdmin
	// UserTypeVIP carries the VIP allow-set.
	UserTypeVIP = session.TypeVIP
	// UserTypeUser carries the base allow-set.
	UserTypeUser = session.TypeUser
)

// UserProfile is the cached snapshot of the authenticated identity.
type UserProfile = session.Profile

// Role is one entry of a profile's role sequence.
type Role = session.Role

// TokenResponse is the credential pair minted by the Identity Service.
type TokenResponse = identity.TokenResponse

// SessionSnapshot is a detached point-in-time read of the session.
type SessionSnapshot = session.Snapshot

// StrategyKind selects the permission strategy at composition time. The
// two strategies assume different profile shapes and are mutually
// exclusive; exactly one is active per engine.
type StrategyKind string

const (
	// StrategyTypeTable is the canonical strategy: user-type allow-sets.
	StrategyTypeTable StrategyKind = "type_table"
	// StrategyRoles is the alternate strategy: role-sequence lookup.
	StrategyRoles StrategyKind = "roles"
)
