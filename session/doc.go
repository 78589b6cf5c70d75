// Package session owns the process-wide identity state: access credential,
// refresh credential, and the cached user profile.
//
// # Design
//
// The in-memory state under [Store]'s mutex is the single source of truth.
// Every mutation happens in two distinct steps: the in-memory write (always
// succeeds, synchronous) and the durable-storage write (best-effort, failures
// are reported through the store's hooks and otherwise ignored). Hydration at
// construction reads the three storage keys once and never touches the
// network; callers revalidate explicitly.
//
// # Invariants
//
//   - A non-empty access token is the definition of "logged in".
//   - The profile may lag the token (login before the profile fetch lands)
//     but is never present while the token is empty.
//   - Clear wipes token, refresh token, and profile together and is
//     idempotent.
//
// # What this package must NOT do
//
//   - Call the Identity Service (orchestration lives in internal/flows).
//   - Surface storage failures as operation errors.
//   - Import admingate or any package that imports it back.
package session
