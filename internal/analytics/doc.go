// Package analytics derives reporting views from a user's transaction log:
// monthly summaries, balances, the current month's expense breakdown and the
// month-over-month change of the net balance.
//
// Local transactions are authoritative. Only a user with no local
// transactions at all is served from the remote mirror, and remote failures
// degrade to empty or zero results.
//
// Views are computed from a per-user daily ledger that is rebuilt only when
// the transaction collection changes.
package analytics
