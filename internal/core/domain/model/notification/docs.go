// Package notification holds the per-user messages produced from order events.
package notification
