// Package admingate provides the session and authorization core for an
// administrative console client: credential-based login against an external
// Identity Service, a renewable session persisted across restarts, a
// type- or role-derived permission set, and a navigation guard over a
// static destination table.
//
// # Architecture boundaries
//
// admingate is the public surface. It exposes [Engine], [Builder], [Config],
// and the sentinel error values. Domain state and decisions live in the
// subpackages — session (credential + profile state), storage (durable
// backends), permission (allow/deny strategies), guard (navigation
// decisions), identity (the HTTP collaborator) — and flow orchestration is
// internal and never exported.
//
// # Authority model
//
// Engine decisions are client-side: HasPermission is advisory for rendering
// affordances, and the guard gates page access. The server remains the
// authoritative gate for every data mutation.
//
// # What this package must NOT do
//
//   - Verify credentials or token signatures (the Identity Service owns both).
//   - Renew tokens automatically; [Engine.Refresh] runs only on request.
//   - Let a durable-storage failure block an in-memory session operation.
package admingate
