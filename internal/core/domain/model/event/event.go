package event

import (
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/user"
)

// Event is a fact about an order that other parties may want to hear about.
//
// Aggregates raise events with the order-side fields filled in; the customer
// fields are attached by whoever holds the customer in the same transaction.
type Event struct {
	ID         kernel.UUID
	Type       Type
	OrderID    kernel.UUID
	OccurredAt time.Time

	CustomerID      kernel.UUID
	CustomerName    string
	CustomerAddress string

	Bottles     int
	TotalAmount kernel.Money
	PaidAmount  kernel.Money
	Receivable  kernel.Money
	Payable     kernel.Money

	// RiderID is the rider the event concerns: the new rider for
	// OrderAssigned, the previous one for OrderReassigned and the assigned
	// one, if any, for OrderCancelled and OrderDelivered.
	RiderID *kernel.UUID

	// Actor fields are set for OrderCancelled.
	ActorID   *kernel.UUID
	ActorRole user.Role
	Reason    string
}

func newEvent(t Type, orderID kernel.UUID, at time.Time) Event {
	return Event{
		ID:          kernel.NewUUID(),
		Type:        t,
		OrderID:     orderID,
		OccurredAt:  at.UTC(),
		TotalAmount: kernel.ZeroMoney(),
		PaidAmount:  kernel.ZeroMoney(),
		Receivable:  kernel.ZeroMoney(),
		Payable:     kernel.ZeroMoney(),
	}
}

func NewOrderAssigned(orderID, riderID kernel.UUID, bottles int, total kernel.Money, at time.Time) Event {
	e := newEvent(OrderAssigned, orderID, at)
	e.RiderID = &riderID
	e.Bottles = bottles
	e.TotalAmount = total
	return e
}

func NewOrderReassigned(orderID, previousRiderID kernel.UUID, bottles int, at time.Time) Event {
	e := newEvent(OrderReassigned, orderID, at)
	e.RiderID = &previousRiderID
	e.Bottles = bottles
	return e
}

func NewOrderDelivered(
	orderID kernel.UUID,
	riderID *kernel.UUID,
	bottles int,
	total, paid, receivable, payable kernel.Money,
	at time.Time,
) Event {
	e := newEvent(OrderDelivered, orderID, at)
	e.RiderID = riderID
	e.Bottles = bottles
	e.TotalAmount = total
	e.PaidAmount = paid
	e.Receivable = receivable
	e.Payable = payable
	return e
}

// Actor identifies who performed an action.
type Actor struct {
	ID   kernel.UUID
	Role user.Role
}

func NewOrderCancelled(orderID kernel.UUID, riderID *kernel.UUID, bottles int, actor Actor, reason string, at time.Time) Event {
	e := newEvent(OrderCancelled, orderID, at)
	e.RiderID = riderID
	e.Bottles = bottles
	actorID := actor.ID
	e.ActorID = &actorID
	e.ActorRole = actor.Role
	e.Reason = reason
	return e
}

// WithCustomer returns a copy of e carrying the customer details.
func (e Event) WithCustomer(id kernel.UUID, name, address string) Event {
	e.CustomerID = id
	e.CustomerName = name
	e.CustomerAddress = address
	return e
}
