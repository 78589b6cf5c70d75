// Package flows holds the session orchestration logic behind the engine's
// public methods.
//
// Each flow is a free function taking a deps struct of closures over the
// engine's collaborators (identity client, session store, metrics, logger),
// so the ordering and error-policy logic is testable without constructing
// an engine. Flows never hold state between calls.
package flows
