// Package permission resolves an action string into an allow/deny decision
// for a user profile.
//
// Two mutually exclusive strategies exist, selected once at composition
// time: [TypeTable], the canonical strategy, maps the profile's user type to
// a frozen allow-set; [Roles] consults the profile's role sequence instead.
// They assume different profile shapes and are never merged.
//
// Regardless of strategy, [Allowed] is pure and synchronous: the admin user
// type passes unconditionally, an absent profile denies everything, and no
// call ever panics or performs I/O. Decisions here are advisory for UI
// affordances; the server stays authoritative for data mutation.
package permission
