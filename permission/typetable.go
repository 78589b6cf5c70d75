package permission

import (
	"errors"
	"sync"

	"github.com/kovrae/admingate/session"
)

// TypeTable is the canonical strategy: a static table mapping a user type
// to an explicit allow-set of action strings. Unknown user types deny all.
//
// The table is populated during composition via [TypeTable.Grant] and then
// frozen; lookups after Freeze are lock-free reads.
type TypeTable struct {
	mu     sync.RWMutex
	allow  map[session.UserType]map[string]struct{}
	frozen bool
}

// NewTypeTable creates an empty type table.
func NewTypeTable() *TypeTable {
	return &TypeTable{allow: make(map[session.UserType]map[string]struct{})}
}

// DefaultTypeTable returns the console's built-in table: the base user
// allow-set and the VIP superset.
func DefaultTypeTable() *TypeTable {
	t := NewTypeTable()
	_ = t.Grant(session.TypeUser, UserActions()...)
	_ = t.Grant(session.TypeVIP, VIPActions()...)
	t.Freeze()
	return t
}

// Grant adds actions to the allow-set of the given user type. Must be
// called before [TypeTable.Freeze].
func (t *TypeTable) Grant(ut session.UserType, actions ...string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen {
		return errors.New("permission: type table frozen")
	}
	if ut == "" {
		return errors.New("permission: user type cannot be empty")
	}

	set, ok := t.allow[ut]
	if !ok {
		set = make(map[string]struct{}, len(actions))
		t.allow[ut] = set
	}
	for _, a := range actions {
		if a == "" {
			return errors.New("permission: action cannot be empty")
		}
		set[a] = struct{}{}
	}
	return nil
}

// Freeze prevents further grants. Must be called before the table serves
// decisions.
func (t *TypeTable) Freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen = true
}

// Count returns the number of actions granted to the given user type.
func (t *TypeTable) Count(ut session.UserType) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.allow[ut])
}

// Allows reports whether the profile's user type carries the action.
func (t *TypeTable) Allows(p *session.Profile, action string) bool {
	if p == nil {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	set, ok := t.allow[p.UserType]
	if !ok {
		return false
	}
	_, ok = set[action]
	return ok
}
