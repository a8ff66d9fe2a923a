package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"waterdelivery/internal/core/domain/model/billing"
	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// one of the constructors. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a single sale or settlement. It owns the
// lifecycle status and the order's view of the customer's account.
//
// Order follows these invariants:
//   - totalAmount == customerBalance + currentOrderAmount at all times
//   - customerBalance is the customer's balance captured at creation and
//     never changes afterwards
//   - at most one of receivable and payable is non-zero, and both are zero
//     exactly when paidAmount == totalAmount
//   - WalkIn orders never have a rider; EnRoute orders always have one;
//     Delivery orders need one before they can be delivered
//
// Lifecycle changes are recorded as events which the caller drains with
// Events and ClearEvents after persisting the order.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	riderID    *kernel.UUID

	orderType Type
	status    Status
	priority  Priority

	bottles   int
	unitPrice kernel.Money

	// customerBalance is the balance snapshot taken at creation.
	customerBalance    kernel.Money
	currentOrderAmount kernel.Money
	totalAmount        kernel.Money

	paidAmount    kernel.Money
	paymentStatus billing.PaymentStatus
	receivable    kernel.Money
	payable       kernel.Money
	paymentMethod PaymentMethod

	notes        string
	cancelReason string

	deliveredAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time

	events []event.Event

	guard guard.ConstructorGuard
}

// NewOrderParams carries the inputs of NewOrder.
type NewOrderParams struct {
	ID         kernel.UUID
	CustomerID kernel.UUID

	// RiderID is forbidden for WalkIn, required for EnRoute and optional
	// for Delivery.
	RiderID *kernel.UUID

	Type     Type
	Priority Priority

	Bottles   int
	UnitPrice kernel.Money

	// CustomerBalance is the live balance of the customer, read under lock.
	CustomerBalance kernel.Money

	Notes     string
	CreatedAt time.Time
}

// NewOrder creates a Delivery, EnRoute or WalkIn order.
//
// The order amount is bottles × unitPrice and the total is the captured
// customer balance plus that amount. An order created with a rider raises
// OrderAssigned.
//
// Clear-bill orders are created with NewClearBillOrder.
func NewOrder(p NewOrderParams) (*Order, error) {
	if p.Type == ClearBill {
		return nil, errs.NewValueIsInvalidError("clear-bill orders are created from a customer balance")
	}

	o := &Order{
		notes:     strings.TrimSpace(p.Notes),
		createdAt: p.CreatedAt.UTC(),
		updatedAt: p.CreatedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerID(p.CustomerID),
		o.setType(p.Type),
		o.setPriority(p.Priority),
		o.setBottles(p.Bottles),
		o.setUnitPrice(p.UnitPrice),
	); err != nil {
		return nil, err
	}

	if p.RiderID != nil {
		if err := p.RiderID.Validate(); err != nil {
			return nil, err
		}
	}

	status, err := o.orderType.InitialStatus(p.RiderID != nil)
	if err != nil {
		return nil, err
	}
	o.status = status
	o.riderID = p.RiderID

	o.customerBalance = p.CustomerBalance
	o.recompute()

	if o.riderID != nil {
		o.raise(event.NewOrderAssigned(o.id, *o.riderID, o.bottles, o.totalAmount, o.createdAt))
	}

	return o, nil
}

// NewClearBillOrder records the settlement of a customer's whole balance.
//
// The order is created Completed with the balance as its snapshot and total,
// no bottles, and the signed paid amount decided by billing.ReconcileClearBill.
// Its balance movement is PaidAmount().Neg().
func NewClearBillOrder(
	id, customerID kernel.UUID,
	balance, paid kernel.Money,
	method PaymentMethod,
	notes string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		orderType: ClearBill,
		status:    Completed,
		priority:  Normal,
		notes:     strings.TrimSpace(notes),
		createdAt: createdAt.UTC(),
		updatedAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	cleared, err := billing.ReconcileClearBill(balance, paid)
	if err != nil {
		return nil, err
	}

	o.unitPrice = kernel.ZeroMoney()
	o.customerBalance = balance
	o.currentOrderAmount = kernel.ZeroMoney()
	o.totalAmount = balance
	o.paidAmount = cleared.StoredPaid
	o.paymentStatus = cleared.Status
	o.receivable = cleared.Receivable
	o.payable = cleared.Payable
	o.paymentMethod = defaultMethod(method)
	settledAt := o.createdAt
	o.deliveredAt = &settledAt

	return o, nil
}

// RestoreParams carries every persisted field of an order.
type RestoreParams struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	RiderID            *kernel.UUID
	Type               Type
	Status             Status
	Priority           Priority
	Bottles            int
	UnitPrice          kernel.Money
	CustomerBalance    kernel.Money
	CurrentOrderAmount kernel.Money
	TotalAmount        kernel.Money
	PaidAmount         kernel.Money
	PaymentStatus      billing.PaymentStatus
	Receivable         kernel.Money
	Payable            kernel.Money
	PaymentMethod      PaymentMethod
	Notes              string
	CancelReason       string
	DeliveredAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RestoreOrder rebuilds an order from persistence. Enumerations are checked,
// amounts are taken as stored.
func RestoreOrder(p RestoreParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.CustomerID.Validate(),
		p.Type.Validate(),
		p.Status.Validate(),
		p.Priority.Validate(),
		p.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                 p.ID,
		customerID:         p.CustomerID,
		riderID:            p.RiderID,
		orderType:          p.Type,
		status:             p.Status,
		priority:           p.Priority,
		bottles:            p.Bottles,
		unitPrice:          p.UnitPrice,
		customerBalance:    p.CustomerBalance,
		currentOrderAmount: p.CurrentOrderAmount,
		totalAmount:        p.TotalAmount,
		paidAmount:         p.PaidAmount,
		paymentStatus:      p.PaymentStatus,
		receivable:         p.Receivable,
		payable:            p.Payable,
		paymentMethod:      p.PaymentMethod,
		notes:              p.Notes,
		cancelReason:       p.CancelReason,
		deliveredAt:        p.DeliveredAt,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                      { return o.id }
func (o *Order) CustomerID() kernel.UUID              { return o.customerID }
func (o *Order) Type() Type                           { return o.orderType }
func (o *Order) Status() Status                       { return o.status }
func (o *Order) Priority() Priority                   { return o.priority }
func (o *Order) Bottles() int                         { return o.bottles }
func (o *Order) UnitPrice() kernel.Money              { return o.unitPrice }
func (o *Order) CustomerBalance() kernel.Money        { return o.customerBalance }
func (o *Order) CurrentOrderAmount() kernel.Money     { return o.currentOrderAmount }
func (o *Order) TotalAmount() kernel.Money            { return o.totalAmount }
func (o *Order) PaidAmount() kernel.Money             { return o.paidAmount }
func (o *Order) PaymentStatus() billing.PaymentStatus { return o.paymentStatus }
func (o *Order) Receivable() kernel.Money             { return o.receivable }
func (o *Order) Payable() kernel.Money                { return o.payable }
func (o *Order) PaymentMethod() PaymentMethod         { return o.paymentMethod }
func (o *Order) Notes() string                        { return o.notes }
func (o *Order) CancelReason() string                 { return o.cancelReason }
func (o *Order) DeliveredAt() *time.Time              { return o.deliveredAt }
func (o *Order) CreatedAt() time.Time                 { return o.createdAt }
func (o *Order) UpdatedAt() time.Time                 { return o.updatedAt }

// Rider returns the assigned rider's ID, or nil when no rider is assigned.
func (o *Order) Rider() *kernel.UUID {
	return o.riderID
}

// Events returns the events raised since the last ClearEvents.
func (o *Order) Events() []event.Event {
	return o.events
}

func (o *Order) ClearEvents() {
	o.events = nil
}

// UpdateStatus moves a Delivery or EnRoute order to Assigned or InProgress,
// optionally handing it to another rider.
//
// This method enforces the following business rules:
//   - Only orders fulfilled by a rider can change status this way
//   - Pending -> Assigned requires a rider
//   - Assigned -> Assigned and InProgress -> InProgress are reassignments
//   - Assigned -> InProgress starts the trip
//
// A new rider raises OrderAssigned, preceded by OrderReassigned for the
// previous rider when there was one. Balances are not touched.
func (o *Order) UpdateStatus(target Status, riderID *kernel.UUID, at time.Time) error {
	if !o.orderType.UsesRider() {
		return errs.NewIllegalTransitionError(strings.ToLower(o.orderType.String())+" order", o.status.String(), "change status of")
	}

	var (
		next Status
		err  error
	)
	switch target {
	case Assigned:
		next, err = o.status.Assign()
	case InProgress:
		next, err = o.status.Start()
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a target of a status update", target))
	}
	if err != nil {
		return err
	}

	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return err
		}
	}
	if riderID == nil && o.riderID == nil {
		return errs.NewValueIsRequiredError("riderId")
	}

	previous := o.riderID
	o.status = next
	o.touch(at)

	if riderID == nil || (previous != nil && previous.IsEqual(*riderID)) {
		return nil
	}

	newRider := *riderID
	o.riderID = &newRider
	if previous != nil {
		o.raise(event.NewOrderReassigned(o.id, *previous, o.bottles, at))
	}
	o.raise(event.NewOrderAssigned(o.id, newRider, o.bottles, o.totalAmount, at))
	return nil
}

// Deliver settles a Delivery or EnRoute order that has a rider.
// The balance movement is PaidAmount().Neg(). Raises OrderDelivered.
func (o *Order) Deliver(paid kernel.Money, method PaymentMethod, at time.Time) error {
	if !o.orderType.UsesRider() {
		return errs.NewIllegalTransitionError(strings.ToLower(o.orderType.String())+" order", o.status.String(), "deliver")
	}

	next, err := o.status.Deliver()
	if err != nil {
		return err
	}
	if o.riderID == nil {
		return errs.NewValueIsRequiredError("riderId")
	}

	if err := o.settle(paid, method, next, at); err != nil {
		return err
	}

	o.raise(event.NewOrderDelivered(
		o.id, o.riderID, o.bottles,
		o.totalAmount, o.paidAmount, o.receivable, o.payable,
		at,
	))
	return nil
}

// CompleteWalkIn settles a walk-in order at the counter.
// The balance movement is PaidAmount().Neg().
func (o *Order) CompleteWalkIn(paid kernel.Money, method PaymentMethod, at time.Time) error {
	if o.orderType != WalkIn {
		return errs.NewIllegalTransitionError(strings.ToLower(o.orderType.String())+" order", o.status.String(), "complete")
	}

	next, err := o.status.Complete()
	if err != nil {
		return err
	}

	return o.settle(paid, method, next, at)
}

// Cancel ends the order. Reversing its balance contribution is the caller's
// job because it depends on every ledger entry of the order. Raises
// OrderCancelled.
func (o *Order) Cancel(actor event.Actor, reason string, at time.Time) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	if err := errors.Join(actor.ID.Validate(), actor.Role.Validate()); err != nil {
		return err
	}

	o.status = next
	o.cancelReason = strings.TrimSpace(reason)
	o.touch(at)

	o.raise(event.NewOrderCancelled(o.id, o.riderID, o.bottles, actor, o.cancelReason, at))
	return nil
}

// AmendParams carries the editable fields of an open order. Nil Notes and
// UnknownPriority keep the current values.
type AmendParams struct {
	Bottles   int
	UnitPrice kernel.Money
	Notes     *string
	Priority  Priority
}

// Amend changes quantity and price of an open order and recomputes its
// amounts from the untouched balance snapshot.
//
// Returns the order amount before the change so that the caller can reverse
// the previous charge and post the new one.
func (o *Order) Amend(p AmendParams, at time.Time) (kernel.Money, error) {
	if err := o.status.ValidateAmend(); err != nil {
		return kernel.Money{}, err
	}

	if err := errors.Join(
		validateBottles(p.Bottles),
		validateUnitPrice(p.UnitPrice),
	); err != nil {
		return kernel.Money{}, err
	}

	if p.Priority != UnknownPriority {
		if err := p.Priority.Validate(); err != nil {
			return kernel.Money{}, err
		}
		o.priority = p.Priority
	}
	if p.Notes != nil {
		o.notes = strings.TrimSpace(*p.Notes)
	}

	previous := o.currentOrderAmount
	o.bottles = p.Bottles
	o.unitPrice = p.UnitPrice
	o.recompute()
	o.touch(at)

	return previous, nil
}

func (o *Order) settle(paid kernel.Money, method PaymentMethod, next Status, at time.Time) error {
	method = defaultMethod(method)
	if err := method.Validate(); err != nil {
		return err
	}

	settlement := billing.Reconcile(o.totalAmount, paid)

	o.status = next
	o.paidAmount = paid
	o.paymentStatus = settlement.Status
	o.receivable = settlement.Receivable
	o.payable = settlement.Payable
	o.paymentMethod = method
	deliveredAt := at.UTC()
	o.deliveredAt = &deliveredAt
	o.touch(at)
	return nil
}

// recompute derives every amount from bottles, unitPrice and the snapshot.
func (o *Order) recompute() {
	o.currentOrderAmount = o.unitPrice.Mul(o.bottles)
	o.totalAmount = o.customerBalance.Add(o.currentOrderAmount)
	o.paidAmount = kernel.ZeroMoney()

	settlement := billing.Reconcile(o.totalAmount, o.paidAmount)
	o.paymentStatus = settlement.Status
	o.receivable = settlement.Receivable
	o.payable = settlement.Payable
}

func (o *Order) raise(e event.Event) {
	o.events = append(o.events, e)
}

func (o *Order) touch(at time.Time) {
	o.updatedAt = at.UTC()
}

func defaultMethod(method PaymentMethod) PaymentMethod {
	if method == NoPaymentMethod {
		return Cash
	}
	return method
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	o.orderType = t
	return nil
}

func (o *Order) setPriority(p Priority) error {
	if p == UnknownPriority {
		p = Normal
	}
	if err := p.Validate(); err != nil {
		return err
	}
	o.priority = p
	return nil
}

func (o *Order) setBottles(bottles int) error {
	if err := validateBottles(bottles); err != nil {
		return err
	}
	o.bottles = bottles
	return nil
}

func (o *Order) setUnitPrice(price kernel.Money) error {
	if err := validateUnitPrice(price); err != nil {
		return err
	}
	o.unitPrice = price
	return nil
}

func validateBottles(bottles int) error {
	if bottles <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("bottles is invalid", fmt.Errorf("%d is not greater than 0", bottles))
	}
	return nil
}

func validateUnitPrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice is invalid", fmt.Errorf("%s is negative", price))
	}
	return nil
}
