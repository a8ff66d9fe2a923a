package order

import (
	"waterdelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	DELIVERY:  Pending ──> Assigned ──┬──> InProgress ──┬──> Delivered
//	                        │    ^    │      │    ^     │
//	                        └────┘    │      └────┘     │
//	                     (reassign)   └─────────────────┘
//	ENROUTE:   InProgress ──> Delivered
//	WALKIN:    Created ──> Completed
//	CLEARBILL: Completed
//
// Every state except Delivered and Cancelled may be cancelled.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is a delivery order still waiting for a rider.
	Pending

	// Assigned is a delivery order with a rider who has not set out yet.
	Assigned

	// Created is a walk-in order waiting to be paid at the counter.
	Created

	// InProgress is an order on the road.
	InProgress

	// Delivered is a settled delivery or en-route order. Final.
	Delivered

	// Completed is a settled walk-in or clear-bill order.
	Completed

	// Cancelled is final.
	Cancelled
)

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "PENDING",
		Assigned:   "ASSIGNED",
		Created:    "CREATED",
		InProgress: "IN_PROGRESS",
		Delivered:  "DELIVERED",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any value outside the declared constants are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status is invalid")
	}
	return nil
}

// String returns the persisted name of the status, or "UNKNOWN".
func (s Status) String() string {
	if str, ok := getValidStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ParseStatus maps a persisted or wire name back to a Status.
func ParseStatus(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("status is invalid")
}

// IsFinal reports whether no further lifecycle action is possible.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// IsOpen reports whether the order is still being fulfilled and may be amended.
func (s Status) IsOpen() bool {
	return s == Pending || s == Assigned || s == InProgress
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned (first rider)
//   - Assigned -> Assigned (reassignment)
func (s Status) Assign() (Status, error) {
	if s != Pending && s != Assigned {
		return Unknown, s.illegal("assign")
	}
	return Assigned, nil
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - Assigned -> InProgress (rider sets out)
//   - InProgress -> InProgress (reassignment on the road)
func (s Status) Start() (Status, error) {
	if s != Assigned && s != InProgress {
		return Unknown, s.illegal("start")
	}
	return InProgress, nil
}

// Deliver transitions an order with a rider to Delivered.
//
// Valid transitions:
//   - Assigned -> Delivered
//   - InProgress -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != Assigned && s != InProgress {
		return Unknown, s.illegal("deliver")
	}
	return Delivered, nil
}

// Complete transitions a walk-in order to Completed.
//
// Valid transitions:
//   - Created -> Completed
func (s Status) Complete() (Status, error) {
	if s != Created {
		return Unknown, s.illegal("complete")
	}
	return Completed, nil
}

// Cancel transitions any non-final status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsFinal() || s.Validate() != nil {
		return Unknown, s.illegal("cancel")
	}
	return Cancelled, nil
}

// ValidateAmend checks that the order is still open for changes.
func (s Status) ValidateAmend() error {
	if !s.IsOpen() {
		return s.illegal("amend")
	}
	return nil
}

func (s Status) illegal(action string) error {
	return errs.NewIllegalTransitionError("order", s.String(), action)
}
