package event

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// Type is the kind of lifecycle change an Event reports.
type Type int

const (
	UnknownType Type = iota
	OrderAssigned
	OrderReassigned
	OrderDelivered
	OrderCancelled
)

var typeNames = map[Type]string{
	OrderAssigned:   "ORDER_ASSIGNED",
	OrderReassigned: "ORDER_REASSIGNED",
	OrderDelivered:  "ORDER_DELIVERED",
	OrderCancelled:  "ORDER_CANCELLED",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

func (t Type) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("eventType", fmt.Errorf("%d is not a valid event type", t))
	}
	return nil
}

func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("eventType", fmt.Errorf("%q is not a valid event type", name))
}
