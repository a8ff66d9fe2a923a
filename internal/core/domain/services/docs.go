// Package services provides domain services that work across aggregates and
// do not belong to any single one of them.
//
// The package includes:
//   - NotificationComposer: routes order events to riders or admins and
//     renders the notification text
//
// Balance arithmetic lives in the billing package.
package services
