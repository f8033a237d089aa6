// Package votingregistry implements the governance voting registry inside the
// governance context.
//
// The registry owns the session/vote state machine: a fixed administrator, a
// grow-only member set, time-bounded sessions with immutable question lists,
// one irrevocable choice per member per question, and an opaque results
// commitment recorded at finalization. Pausing is a deliberate one-way
// emergency brake; the public surface exposes no unpause. Business rules live
// in the application/domain layers behind ports and adapters, and every
// mutation appends one audit record to the outbox for off-chain indexing.
package votingregistry
