// Package store provides a SQLite-backed journal of innings.
//
// The journal is an append-only audit log:
//   - innings: one row per started innings, closed with an end reason
//   - balls: one row per applied ball, with the digest of the resulting state
//
// The journal is never used to resume play. A new innings always starts
// from a fresh state; recorded innings can only be read back and verified
// (see VerifyInnings).
//
// # Ordering
//
// All ordering uses the logical seq column, never timestamps. Every query
// that returns several rows sorts by seq ASC, id COLLATE BINARY ASC so the
// same journal always reads back in the same order.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
