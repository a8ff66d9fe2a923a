// Package event defines the order lifecycle events written to the outbox and
// turned into notifications by the dispatcher.
package event
