// Package guard authorizes navigation intents before they commit.
//
// The guard is a deterministic, side-effect-free transition function
//
//	Destination × session.Snapshot → Outcome
//
// with no state of its own beyond the static route [Table]. Outcomes are
// terminal: the caller (a navigation loop, an HTTP middleware) actions them
// immediately, and the guard is re-evaluated from scratch on every attempt
// so a concurrent logout or self-heal is always observed.
//
// # What this package must NOT do
//
//   - Mutate session state.
//   - Cache decisions between navigation attempts.
//   - Consult the network.
package guard
