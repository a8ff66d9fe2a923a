package order

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// Type decides which lifecycle an order follows.
type Type int

const (
	UnknownType Type = iota

	// Delivery is taken by phone and delivered by a rider later.
	Delivery

	// WalkIn is served and paid at the counter. Never has a rider.
	WalkIn

	// ClearBill settles a customer's outstanding balance without bottles.
	ClearBill

	// EnRoute is sold by a rider already on the road.
	EnRoute
)

var typeNames = map[Type]string{
	Delivery:  "DELIVERY",
	WalkIn:    "WALKIN",
	ClearBill: "CLEARBILL",
	EnRoute:   "ENROUTE",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

func (t Type) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not a valid order type", name))
}

// UsesRider reports whether orders of this type are fulfilled by a rider.
func (t Type) UsesRider() bool {
	return t == Delivery || t == EnRoute
}

// InitialStatus returns the status a new order of this type starts in.
func (t Type) InitialStatus(hasRider bool) (Status, error) {
	switch t {
	case Delivery:
		if hasRider {
			return Assigned, nil
		}
		return Pending, nil
	case EnRoute:
		if !hasRider {
			return Unknown, errs.NewValueIsRequiredError("riderId")
		}
		return InProgress, nil
	case WalkIn:
		if hasRider {
			return Unknown, errs.NewValueIsInvalidError("walk-in orders cannot have a rider")
		}
		return Created, nil
	case ClearBill:
		return Completed, nil
	default:
		return Unknown, t.Validate()
	}
}
