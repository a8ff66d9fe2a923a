// Package ledger models the append-only account of every balance movement.
//
// A customer's balance is, by definition, Fold of all of the customer's
// entries. The customer row caches that fold and is updated in the same
// transaction that appends entries, so the two never diverge.
package ledger
