// Package storage provides the durable client-storage backends the session
// layer persists credentials to.
//
// A [Backend] holds a small number of string-keyed entries (access token,
// refresh token, serialized profile). Persistence is best-effort by contract:
// the session layer treats every backend error as non-fatal and keeps its
// in-memory state authoritative.
//
// # Architecture boundaries
//
// This package owns byte-level persistence only. It never interprets values,
// never touches the network beyond the Redis backend's own client, and never
// imports admingate or its sibling packages.
package storage
