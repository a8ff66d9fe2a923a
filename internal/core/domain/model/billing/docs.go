// Package billing is the balance reconciliation engine: pure functions that
// classify a payment against an amount owed, split the remainder into
// receivable and payable, and derive the customer's next balance.
//
// Every function works on kernel.Money, so no binary floating point is ever
// involved, and nothing here performs I/O.
package billing
