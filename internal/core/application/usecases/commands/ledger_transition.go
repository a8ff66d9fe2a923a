package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// DefaultTransitionAttempts bounds how often a transition is retried after
// the store reported a conflict.
const DefaultTransitionAttempts = 3

// DefaultRetryDelay is the first pause between conflicting attempts. Later
// pauses grow and are jittered.
const DefaultRetryDelay = 20 * time.Millisecond

var ErrTransitionHasNoOrder = errors.New("ledger transition finished without an order")

// TransitionTarget names the customer whose balance a transition moves.
// Exactly one of the fields is set.
type TransitionTarget struct {
	CustomerID *kernel.UUID
	OrderID    *kernel.UUID
	WalkIn     bool
}

func ForCustomer(id kernel.UUID) TransitionTarget {
	return TransitionTarget{CustomerID: &id}
}

func ForOrder(id kernel.UUID) TransitionTarget {
	return TransitionTarget{OrderID: &id}
}

func ForWalkIn() TransitionTarget {
	return TransitionTarget{WalkIn: true}
}

// Transition is the working set of one ledger transition: the locked
// customer, the order being changed and the entries posted so far.
type Transition struct {
	uow      LedgerUoW
	customer *customer.Customer
	order    *order.Order
	isNew    bool
	entries  []*ledger.Entry
	now      time.Time
}

func (t *Transition) Customer() *customer.Customer {
	return t.customer
}

// Order is nil until Create is called for transitions that make a new order.
func (t *Transition) Order() *order.Order {
	return t.order
}

// Now is the single timestamp used for everything the transition writes.
func (t *Transition) Now() time.Time {
	return t.now
}

func (t *Transition) Users() ports.UserRepository {
	return t.uow.UserRepository()
}

// Create registers a new order of the locked customer.
func (t *Transition) Create(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if t.order != nil {
		return errs.NewValueIsInvalidError("transition already has an order")
	}
	if !o.CustomerID().IsEqual(t.customer.ID()) {
		return errs.NewValueIsInvalidError("order belongs to another customer")
	}
	t.order = o
	t.isNew = true
	return nil
}

// Post appends a ledger entry for the current order and moves the customer
// balance by delta. Zero deltas are dropped.
func (t *Transition) Post(kind ledger.Kind, delta kernel.Money) error {
	if t.order == nil {
		return ErrTransitionHasNoOrder
	}
	if delta.IsZero() {
		return nil
	}

	entry, err := ledger.NewEntry(t.customer.ID(), t.order.ID(), kind, delta, t.now)
	if err != nil {
		return err
	}

	t.entries = append(t.entries, entry)
	t.customer.Apply(delta)
	return nil
}

// OrderNet is the current order's net contribution to the balance,
// including entries posted in this transition.
func (t *Transition) OrderNet(ctx context.Context) (kernel.Money, error) {
	if t.order == nil {
		return kernel.Money{}, ErrTransitionHasNoOrder
	}

	net := kernel.ZeroMoney()
	if !t.isNew {
		stored, err := t.uow.LedgerRepository().SumByOrder(ctx, t.order.ID())
		if err != nil {
			return kernel.Money{}, err
		}
		net = stored
	}

	return net.Add(ledger.FoldOrder(t.entries, t.order.ID())), nil
}

// TransitionFunc changes the order and posts the resulting balance movements.
type TransitionFunc func(ctx context.Context, tx *Transition) error

// LedgerTransitioner is the one way to change an order together with its
// customer's balance.
//
// Each attempt runs in its own unit of work: the customer row is locked, the
// order is loaded, fn is applied, then the customer, the order, the new
// ledger entries and the order's events (as outbox rows) are written and
// committed together. Any error rolls everything back. Conflicts reported by
// the store are retried from scratch up to the configured number of attempts.
//
// Example:
//
//	o, err := transitioner.Apply(ctx, ForOrder(orderID), func(ctx context.Context, tx *Transition) error {
//	    if err := tx.Order().Deliver(paid, order.Cash, tx.Now()); err != nil {
//	        return err
//	    }
//	    return tx.Post(ledger.Payment, paid.Neg())
//	})
type LedgerTransitioner struct {
	uowFactory  LedgerUoWFactory
	clock       func() time.Time
	maxAttempts int
	retryDelay  time.Duration
}

func NewLedgerTransitioner(uowFactory LedgerUoWFactory) LedgerTransitioner {
	return LedgerTransitioner{
		uowFactory:  uowFactory,
		clock:       time.Now,
		maxAttempts: DefaultTransitionAttempts,
		retryDelay:  DefaultRetryDelay,
	}
}

// WithClock returns a copy that reads time from clock.
func (l LedgerTransitioner) WithClock(clock func() time.Time) LedgerTransitioner {
	l.clock = clock
	return l
}

// WithMaxAttempts returns a copy that tries each transition at most n times.
func (l LedgerTransitioner) WithMaxAttempts(n int) LedgerTransitioner {
	if n > 0 {
		l.maxAttempts = n
	}
	return l
}

// WithRetryDelay returns a copy that waits about d before the first retry.
// Zero retries immediately.
func (l LedgerTransitioner) WithRetryDelay(d time.Duration) LedgerTransitioner {
	if d >= 0 {
		l.retryDelay = d
	}
	return l
}

// Apply runs fn against target and returns the committed order.
func (l LedgerTransitioner) Apply(ctx context.Context, target TransitionTarget, fn TransitionFunc) (*order.Order, error) {
	var committed *order.Order
	attempts := 0
	operation := func() error {
		attempts++
		o, err := l.attempt(ctx, target, fn)
		if err != nil {
			if errors.Is(err, errs.ErrConflict) {
				return err
			}
			return backoff.Permanent(err)
		}
		committed = o
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(l.backOff(), uint64(l.maxAttempts-1)), ctx)
	err := backoff.Retry(operation, policy)
	switch {
	case err == nil:
		return committed, nil
	case errors.Is(err, errs.ErrConflict):
		return nil, fmt.Errorf("gave up after %d attempts: %w", attempts, err)
	default:
		return nil, err
	}
}

func (l LedgerTransitioner) backOff() backoff.BackOff {
	if l.retryDelay == 0 {
		return &backoff.ZeroBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.retryDelay
	b.MaxInterval = 20 * l.retryDelay
	b.MaxElapsedTime = 0
	return b
}

func (l LedgerTransitioner) attempt(ctx context.Context, target TransitionTarget, fn TransitionFunc) (*order.Order, error) {
	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tx := &Transition{
		uow: uow,
		now: l.clock().UTC(),
	}

	if err := l.lock(ctx, uow, target, tx); err != nil {
		return nil, err
	}

	if err := fn(ctx, tx); err != nil {
		return nil, err
	}
	if tx.order == nil {
		return nil, ErrTransitionHasNoOrder
	}

	if err := l.persist(ctx, uow, tx); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	tx.order.ClearEvents()
	return tx.order, nil
}

// lock resolves the target to a customer and locks its row. For order
// targets the order is read again after locking so that fn sees the state
// left by the previous writer.
func (l LedgerTransitioner) lock(ctx context.Context, uow LedgerUoW, target TransitionTarget, tx *Transition) error {
	customers := uow.CustomerRepository()
	orders := uow.OrderRepository()

	switch {
	case target.OrderID != nil:
		o, err := orders.Get(ctx, *target.OrderID)
		if err != nil {
			return err
		}
		if tx.customer, err = customers.GetForUpdate(ctx, o.CustomerID()); err != nil {
			return err
		}
		if tx.order, err = orders.Get(ctx, *target.OrderID); err != nil {
			return err
		}
		return nil

	case target.CustomerID != nil:
		c, err := customers.GetForUpdate(ctx, *target.CustomerID)
		if err != nil {
			return err
		}
		tx.customer = c
		return nil

	case target.WalkIn:
		c, err := customers.GetWalkIn(ctx)
		if errors.Is(err, errs.ErrObjectNotFound) {
			if c, err = customer.NewWalkInCustomer(kernel.NewUUID()); err != nil {
				return err
			}
			err = customers.Add(ctx, c)
		}
		if err != nil {
			return err
		}
		tx.customer = c
		return nil

	default:
		return errs.NewValueIsRequiredError("transition target")
	}
}

func (l LedgerTransitioner) persist(ctx context.Context, uow LedgerUoW, tx *Transition) error {
	if err := uow.CustomerRepository().Update(ctx, tx.customer); err != nil {
		return err
	}

	orders := uow.OrderRepository()
	if tx.isNew {
		if err := orders.Add(ctx, tx.order); err != nil {
			return err
		}
	} else {
		if err := orders.Update(ctx, tx.order); err != nil {
			return err
		}
	}

	if len(tx.entries) > 0 {
		if err := uow.LedgerRepository().Append(ctx, tx.entries...); err != nil {
			return err
		}
	}

	raised := tx.order.Events()
	if len(raised) == 0 {
		return nil
	}
	c := tx.customer
	for i := range raised {
		raised[i] = raised[i].WithCustomer(c.ID(), c.Name(), c.Address())
	}
	return uow.OutboxRepository().Add(ctx, raised...)
}
