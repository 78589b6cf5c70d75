package session

// UserType is the primary authorization discriminant delivered by the
// Identity Service.
type UserType string

const (
	// TypeAdmin bypasses every permission check and owns the admin-only
	// destinations.
	TypeAdmin UserType = "admin"
	// TypeVIP holds the user allow-set plus the VIP-only actions.
	TypeVIP UserType = "vip"
	// TypeUser holds the base allow-set.
	TypeUser UserType = "user"
)

// Role is one entry of a profile's role sequence, the secondary
// authorization path. Permissions is only populated by identity backends
// that run the role-based strategy; the type-based profile shape leaves it
// empty.
type Role struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Permissions []string `json:"permissions,omitempty"`
}

// Profile is the cached snapshot of the authenticated identity. It is
// replaced wholesale on every refresh and never partially mutated.
type Profile struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Nickname  string   `json:"nickname"`
	Email     string   `json:"email"`
	AvatarURL string   `json:"avatar_url"`
	UserType  UserType `json:"user_type"`
	IsActive  bool     `json:"is_active"`
	Roles     []Role   `json:"roles,omitempty"`
}

// IsAdmin reports whether the profile's user type is admin.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.UserType == TypeAdmin
}

// Clone returns a deep copy so the stored snapshot stays immutable even if
// the caller mutates the returned value.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	if len(p.Roles) > 0 {
		cp.Roles = make([]Role, len(p.Roles))
		copy(cp.Roles, p.Roles)
		for i, r := range p.Roles {
			if len(r.Permissions) > 0 {
				cp.Roles[i].Permissions = append([]string(nil), r.Permissions...)
			}
		}
	}
	return &cp
}

// Snapshot is a point-in-time read of the session used by guard decisions
// and UI projections. It is detached from the store: later mutations do not
// alter an already-taken snapshot.
type Snapshot struct {
	AccessToken  string
	RefreshToken string
	User         *Profile
}

// LoggedIn reports the session invariant: a non-empty access token.
func (s Snapshot) LoggedIn() bool {
	return s.AccessToken != ""
}

// UserType returns the profile's user type, or "" while the profile is
// absent.
func (s Snapshot) UserType() UserType {
	if s.User == nil {
		return ""
	}
	return s.User.UserType
}
