package commands_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/notification"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/domain/model/user"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"
)

// memStore is an in-memory store whose units of work see a private copy of
// the data and publish it on Commit, so a failed transition leaves no trace.
type memStore struct {
	mu    sync.Mutex
	state memState

	// conflicts makes the next n commits fail with a conflict.
	conflicts int
	commits   int
}

type outboxRow struct {
	event  event.Event
	status string
	reason string
}

type memState struct {
	customers     map[kernel.UUID]*customer.Customer
	orders        map[kernel.UUID]*order.Order
	entries       []*ledger.Entry
	users         map[kernel.UUID]*user.User
	outbox        []outboxRow
	notifications []*notification.Notification
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			customers: map[kernel.UUID]*customer.Customer{},
			orders:    map[kernel.UUID]*order.Order{},
			users:     map[kernel.UUID]*user.User{},
		},
	}
}

func (s memState) clone() memState {
	return memState{
		customers:     maps.Clone(s.customers),
		orders:        maps.Clone(s.orders),
		entries:       slices.Clone(s.entries),
		users:         maps.Clone(s.users),
		outbox:        slices.Clone(s.outbox),
		notifications: slices.Clone(s.notifications),
	}
}

func (s *memStore) snapshot() memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *memStore) customer(id kernel.UUID) *customer.Customer {
	return cloneCustomer(s.snapshot().customers[id])
}

func (s *memStore) order(id kernel.UUID) *order.Order {
	return cloneOrder(s.snapshot().orders[id])
}

func (s *memStore) entriesOf(customerID kernel.UUID) []*ledger.Entry {
	var result []*ledger.Entry
	for _, e := range s.snapshot().entries {
		if e.CustomerID().IsEqual(customerID) {
			result = append(result, e)
		}
	}
	return result
}

func (s *memStore) outbox() []outboxRow {
	return s.snapshot().outbox
}

func (s *memStore) addUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.users[u.ID()] = u
}

func (s *memStore) addCustomer(c *customer.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.customers[c.ID()] = cloneCustomer(c)
}

func (s *memStore) Create() commands.LedgerUoW { return &memUoW{store: s} }

type dispatchFactory struct{ store *memStore }

func (f dispatchFactory) Create() commands.DispatchUoW { return &memUoW{store: f.store} }

type customerFactory struct{ store *memStore }

func (f customerFactory) Create() commands.CustomerUoW { return &memUoW{store: f.store} }

type memUoW struct {
	store  *memStore
	work   *memState
	closed bool
}

var errNoTx = errors.New("no active transaction")

func (u *memUoW) Begin(context.Context) error {
	state := u.store.snapshot()
	u.work = &state
	u.closed = false
	return nil
}

func (u *memUoW) Commit(context.Context) error {
	if u.work == nil || u.closed {
		return errNoTx
	}
	u.closed = true

	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.store.conflicts > 0 {
		u.store.conflicts--
		return errs.NewConflictError("customers", errors.New("could not serialize access"))
	}
	u.store.state = *u.work
	u.store.commits++
	return nil
}

func (u *memUoW) Rollback(context.Context) error {
	if u.work == nil || u.closed {
		return errNoTx
	}
	u.closed = true
	return nil
}

func (u *memUoW) CustomerRepository() ports.CustomerRepository { return memCustomers{u} }
func (u *memUoW) OrderRepository() ports.OrderRepository       { return memOrders{u} }
func (u *memUoW) LedgerRepository() ports.LedgerRepository     { return memLedger{u} }
func (u *memUoW) UserRepository() ports.UserRepository         { return memUsers{u} }
func (u *memUoW) OutboxRepository() ports.OutboxRepository     { return memOutbox{u} }
func (u *memUoW) NotificationRepository() ports.NotificationRepository {
	return memNotifications{u}
}

type memCustomers struct{ u *memUoW }

func (r memCustomers) Add(_ context.Context, c *customer.Customer) error {
	if _, ok := r.u.work.customers[c.ID()]; ok {
		return errs.NewConflictError("customers", errors.New("duplicate key"))
	}
	r.u.work.customers[c.ID()] = cloneCustomer(c)
	return nil
}

func (r memCustomers) Update(_ context.Context, c *customer.Customer) error {
	if _, ok := r.u.work.customers[c.ID()]; !ok {
		return errs.NewObjectNotFoundError("customer", c.ID())
	}
	r.u.work.customers[c.ID()] = cloneCustomer(c)
	return nil
}

func (r memCustomers) Get(_ context.Context, id kernel.UUID) (*customer.Customer, error) {
	c, ok := r.u.work.customers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("customer", id)
	}
	return cloneCustomer(c), nil
}

func (r memCustomers) GetForUpdate(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	return r.Get(ctx, id)
}

func (r memCustomers) GetWalkIn(context.Context) (*customer.Customer, error) {
	for _, c := range r.u.work.customers {
		if c.IsWalkIn() {
			return cloneCustomer(c), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("customer", customer.WalkInRef)
}

type memOrders struct{ u *memUoW }

func (r memOrders) Add(_ context.Context, o *order.Order) error {
	if _, ok := r.u.work.orders[o.ID()]; ok {
		return errs.NewConflictError("orders", errors.New("duplicate key"))
	}
	r.u.work.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memOrders) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.u.work.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	r.u.work.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.u.work.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return cloneOrder(o), nil
}

func (r memOrders) GetSettledBetween(_ context.Context, from, to time.Time) ([]*order.Order, error) {
	var result []*order.Order
	for _, o := range r.u.work.orders {
		at := o.DeliveredAt()
		if at == nil || at.Before(from) || !at.Before(to) {
			continue
		}
		if o.Status() == order.Delivered || o.Status() == order.Completed {
			result = append(result, cloneOrder(o))
		}
	}
	return result, nil
}

type memLedger struct{ u *memUoW }

func (r memLedger) Append(_ context.Context, entries ...*ledger.Entry) error {
	r.u.work.entries = append(r.u.work.entries, entries...)
	return nil
}

func (r memLedger) ListByCustomer(_ context.Context, customerID kernel.UUID) ([]*ledger.Entry, error) {
	var result []*ledger.Entry
	for _, e := range r.u.work.entries {
		if e.CustomerID().IsEqual(customerID) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r memLedger) SumByCustomer(ctx context.Context, customerID kernel.UUID) (kernel.Money, error) {
	entries, _ := r.ListByCustomer(ctx, customerID)
	return ledger.Fold(entries), nil
}

func (r memLedger) SumByOrder(_ context.Context, orderID kernel.UUID) (kernel.Money, error) {
	return ledger.FoldOrder(r.u.work.entries, orderID), nil
}

type memUsers struct{ u *memUoW }

func (r memUsers) Add(_ context.Context, u *user.User) error {
	r.u.work.users[u.ID()] = u
	return nil
}

func (r memUsers) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	u, ok := r.u.work.users[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("user", id)
	}
	return u, nil
}

func (r memUsers) GetActiveRider(ctx context.Context, id kernel.UUID) (*user.User, error) {
	u, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role() != user.Rider || !u.IsActive() {
		return nil, errs.NewObjectNotFoundError("rider", id)
	}
	return u, nil
}

func (r memUsers) ListActiveAdmins(context.Context) ([]*user.User, error) {
	var result []*user.User
	for _, u := range r.u.work.users {
		if u.Role() == user.Admin && u.IsActive() {
			result = append(result, u)
		}
	}
	return result, nil
}

type memOutbox struct{ u *memUoW }

func (r memOutbox) Add(_ context.Context, events ...event.Event) error {
	for _, e := range events {
		r.u.work.outbox = append(r.u.work.outbox, outboxRow{event: e, status: "PENDING"})
	}
	return nil
}

func (r memOutbox) ListPending(_ context.Context, limit int) ([]event.Event, error) {
	var result []event.Event
	for _, row := range r.u.work.outbox {
		if row.status == "PENDING" && len(result) < limit {
			result = append(result, row.event)
		}
	}
	return result, nil
}

func (r memOutbox) mark(id kernel.UUID, status, reason string) error {
	for i, row := range r.u.work.outbox {
		if row.event.ID.IsEqual(id) {
			r.u.work.outbox[i].status = status
			r.u.work.outbox[i].reason = reason
			return nil
		}
	}
	return errs.NewObjectNotFoundError("outbox event", id)
}

func (r memOutbox) MarkSent(_ context.Context, id kernel.UUID, _ time.Time) error {
	return r.mark(id, "SENT", "")
}

func (r memOutbox) MarkFailed(_ context.Context, id kernel.UUID, _ time.Time, reason string) error {
	return r.mark(id, "FAILED", reason)
}

type memNotifications struct{ u *memUoW }

func (r memNotifications) AddBatch(_ context.Context, notifications []*notification.Notification) error {
	r.u.work.notifications = append(r.u.work.notifications, notifications...)
	return nil
}

func cloneCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	clone, err := customer.RestoreCustomer(
		c.ID(), c.Name(), c.Phone(), c.Address(), c.Balance(), c.IsActive(), c.IsWalkIn(),
	)
	if err != nil {
		panic(err)
	}
	return clone
}

func cloneOrder(o *order.Order) *order.Order {
	if o == nil {
		return nil
	}
	var rider *kernel.UUID
	if o.Rider() != nil {
		id := *o.Rider()
		rider = &id
	}
	clone, err := order.RestoreOrder(order.RestoreParams{
		ID:                 o.ID(),
		CustomerID:         o.CustomerID(),
		RiderID:            rider,
		Type:               o.Type(),
		Status:             o.Status(),
		Priority:           o.Priority(),
		Bottles:            o.Bottles(),
		UnitPrice:          o.UnitPrice(),
		CustomerBalance:    o.CustomerBalance(),
		CurrentOrderAmount: o.CurrentOrderAmount(),
		TotalAmount:        o.TotalAmount(),
		PaidAmount:         o.PaidAmount(),
		PaymentStatus:      o.PaymentStatus(),
		Receivable:         o.Receivable(),
		Payable:            o.Payable(),
		PaymentMethod:      o.PaymentMethod(),
		Notes:              o.Notes(),
		CancelReason:       o.CancelReason(),
		DeliveredAt:        o.DeliveredAt(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	})
	if err != nil {
		panic(err)
	}
	return clone
}
