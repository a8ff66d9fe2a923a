// Package kernel holds the shared value objects of the ledger domain:
// UUID identifiers and exact-decimal Money.
package kernel
